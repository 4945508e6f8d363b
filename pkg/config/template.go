package config

// template is the commented default configuration.
const template = `# codesurface configuration
#
# Values here are overridden by CODESURFACE_* environment variables and
# command line flags.

render:
  # Detach sections nested deeper than this into leaf sections (0 = never).
  max_depth: 0
  # Detach sections with more content lines than this (0 = never).
  max_lines: 0
  # text or markup
  mode: text
  # Keep leaf placeholders collapsed instead of expanding them.
  lazy_leaves: false

output:
  # text, json, yaml, html or summary
  format: text
  # auto, always or never
  color: auto
  # Truncate text output to this many columns (0 = no limit).
  width: 0
  # Print lines that start collapsed.
  show_hidden: true

convert:
  # commonmark or gfm
  flavor: gfm

# Batch workers (0 = number of CPUs).
jobs: 0
`

// Template returns a commented configuration file holding the defaults.
func Template() []byte {
	return []byte(template)
}
