package human

import (
	"encoding"
	"flag"
	"os"
	"os/user"
	"path/filepath"
)

// Path represents a path on the file system, like the location of a
// configuration or plan file.
//
// The type interprets the special prefix "~/" as representing the home
// directory of the user that the program is running as.
type Path string

func (p Path) String() string {
	return string(p)
}

func (p *Path) Set(s string) error {
	if len(s) < 2 || s[0] != '~' || s[1] != os.PathSeparator {
		*p = Path(s)
		return nil
	}

	home, ok := os.LookupEnv("HOME")
	if !ok {
		u, err := user.Current()
		if err != nil {
			return err
		}
		home = u.HomeDir
	}

	*p = Path(filepath.Join(home, s[2:]))
	return nil
}

func (p *Path) UnmarshalText(b []byte) error {
	return p.Set(string(b))
}

// Resolve expands the "~/" prefix if present and returns the resulting path.
func (p Path) Resolve() (string, error) {
	var q Path
	if err := q.Set(string(p)); err != nil {
		return string(p), err
	}
	return string(q), nil
}

var (
	_ encoding.TextUnmarshaler = (*Path)(nil)
	_ flag.Value               = (*Path)(nil)
)
