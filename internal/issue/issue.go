// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	LangPathNotFoundId Id = iota + 1
	GroupFileParseErrorId
	InvalidFormatId
	InvalidPluralizationLibraryId
	ConfigLoadFailedId
	OutputWriteFailedId
	VendorCollisionId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // catalog key
	mdMsg    MarkdownMsg // markdown rendered for the terminal
	docLinks []HttpLink
	extLinks []HttpLink // third-party references
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the help page with the named glamour style ("auto", "dark",
// "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	langPathNotFoundIssue = &Issue{
		id: LangPathNotFoundId,
		mdMsg: `
# Lang directory not found!

langjs reads translations from a Laravel style lang directory and could not
open the one it was given.

## Expected layout
~~~
resources/lang/
├── en/
│   ├── auth.json
│   └── validation.yaml
├── sv/
│   └── auth.json
└── vendor/
    └── <package>/<locale>/<group>.json
~~~

## Things you can try
- Point langjs at the right directory:
~~~
$ langjs generate --lang-path lang
~~~

- Or set it once in ` + "`langjs.cue`" + `:
~~~cue
lang_path: "lang"
~~~`,
		docLinks: []HttpLink{"https://laravel.com/docs/localization"},
	}

	groupFileParseErrorIssue = &Issue{
		id: GroupFileParseErrorId,
		mdMsg: `
# Failed to parse a translation file!

Every file inside a locale directory is one translation group and must hold a
mapping at the top level.

## Supported formats
- **.json**
- **.yaml** / **.yml**
- **.toml**
- **.cue**

## Common issues
- A trailing comma in JSON
- Tabs used for indentation in YAML
- A list or a plain string at the top level instead of a mapping

## Things you can try
- Check the line and column in the error message above
- Run with verbose mode to see the full error chain:
~~~
$ langjs --verbose generate
~~~`,
	}

	invalidFormatIssue = &Issue{
		id: InvalidFormatId,
		mdMsg: `
# Unknown output format!

## Valid formats
- **es6**: ` + "`export default {...}`" + ` (default)
- **umd**: a UMD module that also registers ` + "`window.vuei18nLocales`" + `
- **json**: the bare JSON object

## Things you can try
~~~
$ langjs generate --format umd
$ langjs generate --json
~~~`,
	}

	invalidPluralizationLibraryIssue = &Issue{
		id: InvalidPluralizationLibraryId,
		mdMsg: `
# Unknown pluralization library!

langjs only knows how two libraries separate plural forms.

## Valid libraries
- **vue-i18n**: keeps ` + "`apple|apples`" + ` untouched (default)
- **vuex-i18n**: rewrites it to ` + "`apple ::: apples`" + `

## Things you can try
~~~
$ langjs generate --lib vuex-i18n
~~~`,
		extLinks: []HttpLink{
			"https://kazupon.github.io/vue-i18n/guide/pluralization.html",
			"https://github.com/dkfbasel/vuex-i18n",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Configuration file locations (first match wins)
1. The file passed with ` + "`--config`" + `
2. Linux: ~/.config/langjs/config.cue
   macOS: ~/Library/Application Support/langjs/config.cue
   Windows: %APPDATA%\langjs\config.cue
3. ./langjs.cue

## Things you can try
- Print the defaults and compare:
~~~
$ langjs config dump
~~~

- Write a fresh default file:
~~~
$ langjs config init
~~~

## Example configuration
~~~cue
lang_path: "resources/lang"
output:    "resources/js/vue-i18n-locales.generated.js"
format:    "es6"

ui: {
  color_scheme: "auto"
  verbose:      false
}
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the generated module!

## Common causes
- The output directory is not writable
- The output path points at an existing directory

## Things you can try
- Write somewhere else:
~~~
$ langjs generate -o public/js/locales.js
~~~

- Print the module instead:
~~~
$ langjs generate --stdout
~~~`,
	}

	vendorCollisionIssue = &Issue{
		id: VendorCollisionId,
		mdMsg: `
# Vendor translations collide with your own!

With ` + "`--with-vendor`" + ` every package under ` + "`lang/vendor/<package>/<locale>`" + `
is merged under the ` + "`vendor`" + ` key of its locale. A group or translation
string named ` + "`vendor`" + ` that is not a mapping blocks that key.

## Things you can try
- Rename the group file called ` + "`vendor`" + `
- Generate without vendor translations`,
	}

	issues = map[Id]*Issue{
		langPathNotFoundIssue.Id():            langPathNotFoundIssue,
		groupFileParseErrorIssue.Id():         groupFileParseErrorIssue,
		invalidFormatIssue.Id():               invalidFormatIssue,
		invalidPluralizationLibraryIssue.Id(): invalidPluralizationLibraryIssue,
		configLoadFailedIssue.Id():            configLoadFailedIssue,
		outputWriteFailedIssue.Id():           outputWriteFailedIssue,
		vendorCollisionIssue.Id():             vendorCollisionIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for i := range maps.Values(issues) {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
