package common

type PrintOptions struct {
	Format            string `yaml:"format,omitempty" toml:"format"`
	Indent            int    `yaml:"indent,omitempty" toml:"indent"`
	TrimTokenOnOutput int    `yaml:"trim,omitempty" toml:"trim"`
}
