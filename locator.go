package datapackage

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	githubPrefix = "https://github.com/"
	rawPrefix    = "https://raw.githubusercontent.com/"

	// DefaultBranch is the branch used for GitHub repository URLs that
	// do not name one.
	DefaultBranch = "master"
)

// ResolveLocator returns the manifest address for a package locator,
// using the default manifest name and branch.
func ResolveLocator(locator string) (string, error) {
	return NewReader().ResolveLocator(locator)
}

// ResolveLocator returns the address of the manifest identified by
// locator.  An existing local path is used directly, or joined with the
// manifest name if it does not already name it.  A GitHub repository
// URL is rewritten to the raw content URL of its manifest.  Anything
// else is taken as a manifest address, again joined with the manifest
// name when needed.
func (r *Reader) ResolveLocator(locator string) (string, error) {

	if locator == "" {
		return "", errors.New("empty package locator")
	}

	name := r.manifestName()
	p := strings.TrimPrefix(locator, "file://")

	if _, err := os.Stat(p); err == nil {
		if filepath.Base(p) == name {
			return p, nil
		}
		return filepath.Join(p, name), nil
	}

	if strings.HasPrefix(locator, githubPrefix) {
		return r.rawGitHubURL(strings.TrimPrefix(locator, githubPrefix)), nil
	}

	if strings.HasSuffix(locator, name) {
		return locator, nil
	}
	if isURL(locator) {
		return strings.TrimSuffix(locator, "/") + "/" + name, nil
	}
	return filepath.Join(p, name), nil
}

// rawGitHubURL maps "org/repo", "org/repo/tree/<branch>/<dir>" and
// "org/repo/blob/<branch>/<dir>/datapackage.json" to raw content URLs.
func (r *Reader) rawGitHubURL(rest string) string {

	name := r.manifestName()
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	parts := strings.Split(rest, "/")

	if len(parts) >= 4 && (parts[2] == "tree" || parts[2] == "blob") {
		dir := parts[4:]
		if len(dir) > 0 && dir[len(dir)-1] == name {
			dir = dir[:len(dir)-1]
		}
		segs := append([]string{parts[0], parts[1], parts[3]}, dir...)
		return rawPrefix + strings.Join(append(segs, name), "/")
	}

	return rawPrefix + rest + "/" + r.branch() + "/" + name
}

// resolveDataPath returns the location of a resource data file given
// the manifest address it was declared in.
func resolveDataPath(manifest, p string) (string, error) {

	if isURL(p) {
		return p, nil
	}

	if isURL(manifest) {
		base, err := url.Parse(manifest)
		if err != nil {
			return "", err
		}
		ref, err := url.Parse(p)
		if err != nil {
			return "", err
		}
		return base.ResolveReference(ref).String(), nil
	}

	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(filepath.Dir(strings.TrimPrefix(manifest, "file://")), p), nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
