package utils

import "os"

// WriteFileWithOwnership writes a file with exactly perm and hands it to the
// invoking user when running under sudo. An existing file keeps no looser
// mode than perm, so rewritten keys stay private.
func WriteFileWithOwnership(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	if err := os.Chmod(path, perm); err != nil {
		return err
	}
	return FixFileOwnership(path)
}

// MkdirAllWithOwnership creates a directory (and parents) and fixes ownership when running with sudo.
func MkdirAllWithOwnership(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return err
	}
	return FixFileOwnership(path)
}

// OpenFileWithOwnership opens a file with flags and fixes ownership when
// running with sudo. Used for append-only logs.
// Caller is responsible for closing the file.
func OpenFileWithOwnership(path string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	if flag&os.O_CREATE != 0 {
		_ = FixFileOwnership(path) // non-critical
	}
	return f, nil
}
