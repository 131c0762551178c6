// Package yaml loads site profiles from YAML configuration files.
// A built-in configuration ships with the binary; an explicit file or a
// nezamdoc.yaml in the working directory overrides it.
package yaml

import (
	_ "embed"
	"os"
	"sort"
	"time"

	"github.com/rashidq/nezamdoc"
	"gopkg.in/yaml.v3"
)

//go:embed sites.yaml
var defaultConfig []byte

// DefaultConfigName is the configuration filename looked up in the
// working directory when no explicit path is given.
const DefaultConfigName = "nezamdoc.yaml"

// Duration wraps time.Duration so timeouts can be written as "30s" or
// "2m" in configuration files.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return nezamdoc.Errorf(nezamdoc.EINVALID, "duration must be a string like \"30s\"")
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return nezamdoc.Errorf(nezamdoc.EINVALID, "invalid duration %q", raw)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the root of a configuration file.
type Config struct {
	Sites map[string]Site `yaml:"sites"`
}

// Site is one site profile as written in configuration.
type Site struct {
	HomeURL   string    `yaml:"home_url"`
	Locale    string    `yaml:"locale"`
	Discovery Discovery `yaml:"discovery"`
	Manifest  Manifest  `yaml:"manifest"`
	Extract   Extract   `yaml:"extract"`
	Output    Output    `yaml:"output"`
	Timeouts  Timeouts  `yaml:"timeouts"`
}

// Discovery selects and parameterizes the discovery strategy.
type Discovery struct {
	Mode           string   `yaml:"mode"`
	Response       Response `yaml:"response"`
	ListSelector   string   `yaml:"list_selector"`
	ExcludeHeading string   `yaml:"exclude_heading"`
}

// Response identifies the background data exchange for response-mode
// discovery.
type Response struct {
	URLPart string `yaml:"url_part"`
	Method  string `yaml:"method"`
}

// Manifest configures where discovery snapshots are written.
type Manifest struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// Extract configures how an item's page is reduced to a document.
type Extract struct {
	TitleSelector   string        `yaml:"title_selector"`
	ContentSelector string        `yaml:"content_selector"`
	FallbackTitle   string        `yaml:"fallback_title"`
	NoiseSelectors  []string      `yaml:"noise_selectors"`
	Repairs         []Repair      `yaml:"repairs"`
	Replacements    []Replacement `yaml:"replacements"`
}

// Repair configures one structural content repair.
type Repair struct {
	Outer string `yaml:"outer"`
	Inner string `yaml:"inner"`
}

// Replacement configures one title substitution.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Output configures document rendering.
type Output struct {
	Dir  string `yaml:"dir"`
	Font Font   `yaml:"font"`
}

// Font configures the document font.
type Font struct {
	Name string  `yaml:"name"`
	Size float64 `yaml:"size"`
}

// Timeouts bounds the blocking browser operations.
type Timeouts struct {
	Navigate Duration `yaml:"navigate"`
	Response Duration `yaml:"response"`
	List     Duration `yaml:"list"`
	Content  Duration `yaml:"content"`
	Idle     Duration `yaml:"idle"`
	Settle   Duration `yaml:"settle"`
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	return parse(defaultConfig)
}

// Load reads a configuration file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nezamdoc.Errorf(nezamdoc.ENOTFOUND, "config file %s not found", path)
		}
		return nil, err
	}
	return parse(data)
}

// Find resolves the configuration to use: the explicit path when given,
// otherwise DefaultConfigName in the working directory when present,
// otherwise the built-in configuration.
func Find(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if _, err := os.Stat(DefaultConfigName); err == nil {
		return Load(DefaultConfigName)
	}
	return Default()
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nezamdoc.Errorf(nezamdoc.EINVALID, "parsing config: %v", err)
	}
	return &cfg, nil
}

// Names returns the configured site names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Sites))
	for name := range c.Sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Site builds the validated, normalized domain site for name.
// Returns ENOTFOUND when the configuration has no such site.
func (c *Config) Site(name string) (*nezamdoc.Site, error) {
	raw, ok := c.Sites[name]
	if !ok {
		return nil, nezamdoc.Errorf(nezamdoc.ENOTFOUND, "site %q not found in config", name)
	}

	site := &nezamdoc.Site{
		Name:            name,
		HomeURL:         raw.HomeURL,
		Locale:          raw.Locale,
		Mode:            nezamdoc.DiscoveryMode(raw.Discovery.Mode),
		Response:        nezamdoc.ResponseMatch(raw.Discovery.Response),
		ListSelector:    raw.Discovery.ListSelector,
		ExcludeHeading:  raw.Discovery.ExcludeHeading,
		TitleSelector:   raw.Extract.TitleSelector,
		ContentSelector: raw.Extract.ContentSelector,
		FallbackTitle:   raw.Extract.FallbackTitle,
		NoiseSelectors:  raw.Extract.NoiseSelectors,
		ManifestDir:     raw.Manifest.Dir,
		ManifestName:    raw.Manifest.Name,
		OutputDir:       raw.Output.Dir,
		Font:            nezamdoc.Font(raw.Output.Font),
		Timeouts: nezamdoc.Timeouts{
			Navigate: time.Duration(raw.Timeouts.Navigate),
			Response: time.Duration(raw.Timeouts.Response),
			List:     time.Duration(raw.Timeouts.List),
			Content:  time.Duration(raw.Timeouts.Content),
			Idle:     time.Duration(raw.Timeouts.Idle),
			Settle:   time.Duration(raw.Timeouts.Settle),
		},
	}
	for _, repair := range raw.Extract.Repairs {
		site.Repairs = append(site.Repairs, nezamdoc.RepairSpec(repair))
	}
	for _, rep := range raw.Extract.Replacements {
		site.Replacements = append(site.Replacements, nezamdoc.Replacement(rep))
	}

	site.Normalize()
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}
