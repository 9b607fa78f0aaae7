package procfs

import (
	"strconv"
	"strings"

	"horizonx-probe/internal/sysfs"
)

// InteractiveUIDFloor is the first uid handed out to regular accounts.
const InteractiveUIDFloor = 1000

var nonInteractiveShells = map[string]bool{
	"/usr/sbin/nologin": true,
	"/sbin/nologin":     true,
	"/bin/false":        true,
	"/usr/bin/false":    true,
}

type User struct {
	Name  string
	UID   int
	GID   int
	Home  string
	Shell string
}

func (u User) Interactive(minUID int) bool {
	return u.UID >= minUID && !nonInteractiveShells[u.Shell]
}

// ReadPasswd parses /etc/passwd; malformed lines are skipped.
func ReadPasswd(fs sysfs.FS) []User {
	var users []User
	for _, line := range fs.ReadLines("/etc/passwd") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 7 {
			continue
		}
		uid, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		gid, _ := strconv.Atoi(parts[3])
		users = append(users, User{
			Name:  parts[0],
			UID:   uid,
			GID:   gid,
			Home:  parts[5],
			Shell: parts[6],
		})
	}
	return users
}
