package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
)

var namePattern, _ = regexp.Compile("^[0-9A-Za-z._-]+$")

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	if slices.Contains(ReservedWords, s) {
		return fmt.Errorf("%s is a reserved word", s)
	}
	return nil
}

func SimConfigValidator(c *SimCfg) error {
	if c.InitialRoundCap < 0 || c.PostUpdateRoundCap < 0 {
		return fmt.Errorf("round caps must not be negative")
	}
	if c.LogPath != "" {
		if err := PathValidator(c.LogPath); err != nil {
			return err
		}
	}
	for _, r := range c.Trace {
		if r.Node == "" || r.Dest == "" || r.Via == "" {
			return fmt.Errorf("trace rule must name node, dest and via: %+v", r)
		}
		for _, n := range []NodeId{r.Node, r.Dest, r.Via} {
			if err := NameValidator(string(n)); err != nil {
				return err
			}
		}
		if r.MinRound < 0 {
			return fmt.Errorf("trace rule min_round must not be negative: %+v", r)
		}
	}
	return nil
}
