package proc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Process is one row of the host process table.
type Process struct {
	PID int
	// Label is the first word of the process's argument list, which is
	// what "exec -a" sets.
	Label string
}

// Table lists the processes currently running on the host.
type Table interface {
	Processes() ([]Process, error)
}

// ProcFS reads the process table from a procfs mount.
type ProcFS struct {
	Root string
}

// Processes walks every numeric entry under Root. Processes that exit
// mid-walk or have an empty cmdline (kernel threads, zombies) are skipped.
func (p ProcFS) Processes() ([]Process, error) {
	root := p.Root
	if root == "" {
		root = "/proc"
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, len(entries))
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, entry.Name(), "cmdline"))
		if err != nil {
			continue
		}
		label := labelOf(cmdlineArgs(data))
		if label == "" {
			continue
		}
		out = append(out, Process{PID: pid, Label: label})
	}
	return out, nil
}

// PS reads the process table by running ps.
type PS struct {
	// Path is the ps binary; defaults to "ps" on PATH.
	Path string
}

func (p PS) Processes() ([]Process, error) {
	bin := p.Path
	if bin == "" {
		bin = "ps"
	}
	output, err := exec.Command(bin, "-eo", "pid=,args=").Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", bin, err)
	}
	return parsePS(output), nil
}

// Fallback tries Primary and uses Secondary when it fails.
type Fallback struct {
	Primary   Table
	Secondary Table
}

func (f Fallback) Processes() ([]Process, error) {
	procs, err := f.Primary.Processes()
	if err == nil {
		return procs, nil
	}
	procs, err2 := f.Secondary.Processes()
	if err2 != nil {
		return nil, errors.Join(err, err2)
	}
	return procs, nil
}

// HostTable reads procfs at root and falls back to ps where procfs is
// unavailable.
func HostTable(root string) Table {
	return Fallback{Primary: ProcFS{Root: root}, Secondary: PS{}}
}

func cmdlineArgs(data []byte) string {
	parts := bytes.Split(data, []byte{0})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		out = append(out, string(part))
	}
	return strings.Join(out, " ")
}

func parsePS(output []byte) []Process {
	var out []Process
	sc := bufio.NewScanner(bytes.NewReader(output))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		out = append(out, Process{PID: pid, Label: fields[1]})
	}
	return out
}

func labelOf(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
