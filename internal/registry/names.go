package registry

import (
	"fmt"
	"strings"
)

// MaxNameLen matches the kernel's limit on a process comm name.
const MaxNameLen = 15

// NormalizeName turns user input into a registry name: spaces become '-',
// letters are lowercased, and the result is validated.
func NormalizeName(raw string) (string, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "-"))
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateName checks the naming rules without rewriting the input.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidName, name, MaxNameLen)
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return fmt.Errorf("%w: %q contains %q (allowed: letters, digits, '-', '_')", ErrInvalidName, name, name[i])
		}
	}
	return nil
}

// NormalizeCommand trims the command and rejects characters that would
// corrupt the generated record line.
func NormalizeCommand(raw string) (string, error) {
	cmd := strings.TrimSpace(raw)
	if cmd == "" {
		return "", fmt.Errorf("%w: command must not be empty", ErrInvalidCommand)
	}
	if i := strings.IndexAny(cmd, "\"\r\n\x00"); i >= 0 {
		return "", fmt.Errorf("%w: %q contains %q", ErrInvalidCommand, cmd, cmd[i])
	}
	return cmd, nil
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	default:
		return false
	}
}
