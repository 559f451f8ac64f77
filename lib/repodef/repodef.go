// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package repodef

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Repo identifies one version of a data repository.
type Repo struct {
	// Name is the repository name, without any date component
	// (e.g. "main", "dc2").
	Name string `yaml:"name"`

	// Date is the version date, YYYYMMDD.
	Date string `yaml:"date"`

	// Tables lists the registry tables provisioned with static hooks
	// when the repository is created.
	Tables []string `yaml:"tables"`
}

// String returns the canonical "<name>/<date>" form used in logs and
// the state store.
func (r Repo) String() string {
	return r.Name + "/" + r.Date
}

var dateForm = regexp.MustCompile(`^\d{8}$`)

// Validate checks the definition for well-formedness.
func (r Repo) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("repo: name is required")
	}
	if !dateForm.MatchString(r.Date) {
		return fmt.Errorf("repo %s: date %q is not YYYYMMDD", r.Name, r.Date)
	}
	return nil
}

// Site defines URI templates for a particular compute center or data
// facility. Templates use {repo.name} and {repo.date} placeholders.
type Site struct {
	// Name uniquely identifies the site (e.g. "ncsa", "ipmu").
	Name string `yaml:"name"`

	// RepoURITemplate is the template for the repository root URI.
	RepoURITemplate string `yaml:"repo_uri_template"`

	// DBURITemplate is the template for the registry database
	// connection URI.
	DBURITemplate string `yaml:"db_uri_template"`

	// DBNamespaceTemplate is the template for the registry database
	// schema name.
	DBNamespaceTemplate string `yaml:"db_namespace_template"`
}

// RepoURI returns the repository root URI for a repository at this site.
func (s Site) RepoURI(r Repo) string {
	return expandRepo(s.RepoURITemplate, r)
}

// DBURI returns the registry database connection URI for a repository
// at this site.
func (s Site) DBURI(r Repo) string {
	return expandRepo(s.DBURITemplate, r)
}

// DBNamespace returns the registry schema name for a repository at this
// site.
func (s Site) DBNamespace(r Repo) string {
	return expandRepo(s.DBNamespaceTemplate, r)
}

// expandRepo substitutes {repo.name} and {repo.date} in a site URI
// template.
func expandRepo(template string, r Repo) string {
	replacer := strings.NewReplacer(
		"{repo.name}", r.Name,
		"{repo.date}", r.Date,
	)
	return replacer.Replace(template)
}

// Definitions is the full set of known repositories and sites, loaded
// from one YAML file.
type Definitions struct {
	Repos []Repo `yaml:"repos"`
	Sites []Site `yaml:"sites"`
}

// LoadDefinitions reads and validates a definitions file.
func LoadDefinitions(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, repo := range defs.Repos {
		if err := repo.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, site := range defs.Sites {
		if site.Name == "" {
			return nil, fmt.Errorf("%s: site with empty name", path)
		}
	}
	return &defs, nil
}

// Repo looks up a repository by name and date. An empty date selects
// the newest version of that name (dates sort lexically because they
// are YYYYMMDD).
func (d *Definitions) Repo(name, date string) (Repo, error) {
	var versions []Repo
	for _, repo := range d.Repos {
		if repo.Name == name {
			versions = append(versions, repo)
		}
	}
	if len(versions) == 0 {
		return Repo{}, fmt.Errorf("unknown repository %q", name)
	}
	if date == "" {
		sort.Slice(versions, func(i, j int) bool { return versions[i].Date < versions[j].Date })
		return versions[len(versions)-1], nil
	}
	for _, repo := range versions {
		if repo.Date == date {
			return repo, nil
		}
	}
	return Repo{}, fmt.Errorf("repository %q has no version dated %s", name, date)
}

// Site looks up a site by name.
func (d *Definitions) Site(name string) (Site, error) {
	for _, site := range d.Sites {
		if site.Name == name {
			return site, nil
		}
	}
	return Site{}, fmt.Errorf("unknown site %q", name)
}

// HookLayerCandidates returns the ordered hook-configuration layer
// candidates for a repository, from most general to most specific:
// base, then per-repository, then per-version. Candidates carry no
// extension; the hookcfg loader probes the supported formats and skips
// candidates with no file present.
func HookLayerCandidates(dir string, r Repo) []string {
	return []string{
		filepath.Join(dir, "base"),
		filepath.Join(dir, r.Name),
		filepath.Join(dir, r.Name+"_"+r.Date),
	}
}
