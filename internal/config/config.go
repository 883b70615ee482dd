package config

import (
	"fmt"
	"os"
	"time"
)

// Compiled-in reporting constants. These are deliberate fixed policy,
// not tunables.
const (
	DefaultTimezone = "Europe/Luxembourg"
	HoursPerWorkday = 8
	PageSize        = 100
	RequestTimeout  = 60 * time.Second
)

type Config struct {
	Jira   JiraConfig
	Report ReportConfig
}

type JiraConfig struct {
	BaseURL  string
	Email    string
	APIToken string
	Timeout  time.Duration
	PageSize int
}

type ReportConfig struct {
	LabelPrefixes   []string // raw flag values, normalized downstream
	Month           string   // "YYYY-MM", empty means current month
	Timezone        string
	HoursPerWorkday int
	XLSXDir         string // empty disables the workbook export
	Verbose         bool
}

// New returns a Config with the fixed constants applied.
func New() *Config {
	return &Config{
		Jira: JiraConfig{
			Timeout:  RequestTimeout,
			PageSize: PageSize,
		},
		Report: ReportConfig{
			Timezone:        DefaultTimezone,
			HoursPerWorkday: HoursPerWorkday,
		},
	}
}

// ApplyEnv fills credentials left empty by flags from the environment.
func (c *Config) ApplyEnv() {
	if c.Jira.BaseURL == "" {
		c.Jira.BaseURL = os.Getenv("JIRA_BASE_URL")
	}
	if c.Jira.Email == "" {
		c.Jira.Email = os.Getenv("JIRA_EMAIL")
	}
	if c.Jira.APIToken == "" {
		c.Jira.APIToken = os.Getenv("JIRA_API_TOKEN")
	}
	if len(c.Report.LabelPrefixes) == 0 {
		if v := os.Getenv("JIRA_LABEL_PREFIXES"); v != "" {
			c.Report.LabelPrefixes = []string{v}
		}
	}
}

func (c *Config) Validate() error {
	if c.Jira.BaseURL == "" {
		return fmt.Errorf("--base-url is required (or set JIRA_BASE_URL)")
	}
	if c.Jira.Email == "" {
		return fmt.Errorf("--email is required (or set JIRA_EMAIL)")
	}
	if c.Jira.APIToken == "" {
		return fmt.Errorf("--api-token is required (or set JIRA_API_TOKEN)")
	}
	if len(c.Report.LabelPrefixes) == 0 {
		return fmt.Errorf("--label-prefix is required (or set JIRA_LABEL_PREFIXES)")
	}
	return nil
}
