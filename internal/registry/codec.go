package registry

import (
	"bytes"
	"fmt"
	"strings"
)

// Header is the first line of every service file.
const Header = "#!/bin/bash"

// A record line has the shape
//
//	bash -c "exec -a <name> <command> &>> <name>.log &" # <name>
//
// The name appears three times; all three must agree.
const (
	recordPrefix = `bash -c "exec -a `
	logRedirect  = " &>> "
	recordTail   = `.log &" # `
)

// record is one tokenized line before validation.
type record struct {
	label   string
	command string
	logName string
	comment string
}

// FormatRecord renders a single record line without the trailing newline.
func FormatRecord(s Service) string {
	return fmt.Sprintf(`bash -c "exec -a %s %s &>> %s.log &" # %s`, s.Name, s.Command, s.Name, s.Name)
}

// Parse builds a registry from the raw bytes of a service file.
//
// Bytes are never decoded as multi-byte text; matching is done on the raw
// byte sequence. Blank lines are skipped and a leading "#!" line is
// treated as the header. A name appearing twice is not an error: the
// later record wins.
func Parse(data []byte) (*Registry, error) {
	reg := New()
	headerSeen := false
	for i, raw := range bytes.Split(data, []byte{'\n'}) {
		line := strings.TrimSuffix(string(raw), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			if strings.HasPrefix(line, "#!") {
				continue
			}
		}
		rec, err := tokenize(line)
		if err != nil {
			err.Line = i + 1
			return nil, err
		}
		if err := rec.validate(); err != nil {
			err.Line = i + 1
			return nil, err
		}
		reg.services[rec.label] = rec.command
	}
	return reg, nil
}

// Serialize renders the registry in service file form. Records are sorted
// by name so repeated saves of the same registry are byte-identical.
func Serialize(reg *Registry) []byte {
	var b bytes.Buffer
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, s := range reg.Services() {
		b.WriteString(FormatRecord(s))
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func tokenize(line string) (record, *FormatError) {
	var rec record
	rest, ok := strings.CutPrefix(line, recordPrefix)
	if !ok {
		return rec, &FormatError{Reason: fmt.Sprintf("expected record to start with %q", recordPrefix)}
	}

	tail := strings.LastIndex(rest, recordTail)
	if tail < 0 {
		return rec, &FormatError{Reason: "missing log file or trailing comment"}
	}
	rec.comment = rest[tail+len(recordTail):]
	head := rest[:tail]

	redirect := strings.LastIndex(head, logRedirect)
	if redirect < 0 {
		return rec, &FormatError{Reason: fmt.Sprintf("missing %q redirect", strings.TrimSpace(logRedirect))}
	}
	rec.logName = head[redirect+len(logRedirect):]

	rec.label, rec.command, ok = strings.Cut(head[:redirect], " ")
	if !ok || rec.command == "" {
		return rec, &FormatError{Reason: "missing command"}
	}
	return rec, nil
}

func (r record) validate() *FormatError {
	fields := []struct {
		field string
		value string
	}{
		{"label", r.label},
		{"log name", r.logName},
		{"comment name", r.comment},
	}
	for _, f := range fields {
		if !isNameToken(f.value) {
			return &FormatError{Field: f.field, Reason: fmt.Sprintf("%q is not a valid name", f.value)}
		}
	}
	if r.logName != r.label {
		return &FormatError{Field: "log name", Reason: fmt.Sprintf("%q does not match label %q", r.logName, r.label)}
	}
	if r.comment != r.label {
		return &FormatError{Field: "comment name", Reason: fmt.Sprintf("%q does not match label %q", r.comment, r.label)}
	}
	return nil
}

func isNameToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
