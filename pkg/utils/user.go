package utils

import (
	"os"
	"os/user"
	"strconv"
)

// GetActualUser returns the invoking user's name and home directory. Under
// sudo this is SUDO_USER rather than root, so `sudo wgtools ...` still reads
// and writes ~/.wgtools of the person who ran it.
func GetActualUser() (username, homeDir string, err error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		if u, err := user.Lookup(sudoUser); err == nil {
			return u.Username, u.HomeDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", err
	}

	u, err := user.Current()
	if err != nil {
		return "", home, nil
	}
	return u.Username, home, nil
}

// FixFileOwnership chowns path to SUDO_USER. It is a no-op outside sudo and
// when the user cannot be looked up.
func FixFileOwnership(path string) error {
	sudoUser := os.Getenv("SUDO_USER")
	if sudoUser == "" {
		return nil
	}

	u, err := user.Lookup(sudoUser)
	if err != nil {
		return nil
	}

	uid, _ := strconv.Atoi(u.Uid)
	gid, _ := strconv.Atoi(u.Gid)
	return os.Chown(path, uid, gid)
}
