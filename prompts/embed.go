package prompts

import _ "embed"

//go:embed info.md.tmpl
var InfoTemplate string

//go:embed help.md
var Help string
