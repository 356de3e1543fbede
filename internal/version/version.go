package version

import (
	"regexp"
	"strconv"
	"strings"
)

var pattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:\+(\d+))?$`)

// Version is a parsed major.minor.patch[+build] string.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Build    int
	HasBuild bool
}

// Parse parses s. Surrounding whitespace is not accepted.
func Parse(s string) (Version, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, ErrMalformed
	}

	var (
		v   Version
		err error
	)

	for i, dst := range []*int{&v.Major, &v.Minor, &v.Patch} {
		if *dst, err = strconv.Atoi(m[i+1]); err != nil {
			// digits only, so this is an int overflow
			return Version{}, ErrMalformed
		}
	}

	if m[4] != "" {
		if v.Build, err = strconv.Atoi(m[4]); err != nil {
			return Version{}, ErrMalformed
		}

		v.HasBuild = true
	}

	return v, nil
}

// number folds major, minor and patch into one comparable integer.
// Minor and patch values of 100 or more bleed into the next component.
func (v Version) number() int {
	return v.Major*10000 + v.Minor*100 + v.Patch
}

// String renders v in canonical form.
func (v Version) String() string {
	var b strings.Builder

	b.WriteString(strconv.Itoa(v.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Patch))

	if v.HasBuild {
		b.WriteByte('+')
		b.WriteString(strconv.Itoa(v.Build))
	}

	return b.String()
}

// Satisfies reports whether v is at least required.
// At equal major.minor.patch the build numbers decide, but only if both carry one.
func (v Version) Satisfies(required Version) bool {
	app, req := v.number(), required.number()

	switch {
	case app < req:
		return false
	case app > req:
		return true
	case v.HasBuild && required.HasBuild:
		return v.Build >= required.Build
	default:
		return true
	}
}

// IsCompatible reports whether an app running appVersion may see an entry requiring requiredVersion.
// Empty strings mean absent.
func IsCompatible(appVersion, requiredVersion string) bool {
	if requiredVersion == "" {
		return true
	}

	if appVersion == "" {
		return false
	}

	app, err := Parse(appVersion)
	if err != nil {
		return true
	}

	required, err := Parse(requiredVersion)
	if err != nil {
		return true
	}

	return app.Satisfies(required)
}

// Effective returns the version constraint of an entry: its own, else its group's.
func Effective(entryVersion, groupVersion string) string {
	if entryVersion != "" {
		return entryVersion
	}

	return groupVersion
}
