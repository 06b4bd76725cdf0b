// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a documented failure mode.
type Id int

const (
	FragmentParseFailedId Id = iota + 1
	DescriptorNotFoundId
	DescriptorInvalidId
	TemplateNotFoundId
	BundlerNotFoundId
	OutputDirMissingId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look up the issue
	topic string      // subcommand argument accepted by "webdesk explain"
	mdMsg MarkdownMsg // markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Topic() string {
	return i.topic
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue documentation rendered for terminal display.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	fragmentParseFailedIssue = &Issue{
		id:    FragmentParseFailedId,
		topic: "fragment-parse",
		mdMsg: `
# A configuration fragment could not be parsed

Fragments are JSON files merged from the base configuration directory and
every overlay, in lexicographic filename order. A malformed fragment is
**skipped with a warning** and does not abort the build, but its keys will
be missing from the merged tree.

## Things you can try
- Run with '--verbose' to see which fragment failed and why
- Validate the file:
~~~
$ python -m json.tool config/30-client.json
~~~
- Comments in the // and /* */ styles are allowed; trailing garbage is not`,
	}

	descriptorNotFoundIssue = &Issue{
		id:    DescriptorNotFoundId,
		topic: "descriptor-missing",
		mdMsg: `
# No package descriptor found

Every installable package must carry a 'metadata.json' descriptor in its
own directory under 'packages/<repository>/' (or an overlay's packages
path).

## Search locations (in merge order)
1. '<root>/packages/<repository>/*/metadata.json'
2. Each overlay directory that declares a packages path

## Things you can try
- Check the package was installed under the repository you named
- List everything discovery can see:
~~~
$ webdesk package list
~~~`,
	}

	descriptorInvalidIssue = &Issue{
		id:    DescriptorInvalidId,
		topic: "descriptor-invalid",
		mdMsg: `
# A package descriptor failed schema validation

Descriptors are validated against the metadata schema before the package is
admitted to discovery. Common causes:

- 'type' is not one of 'application', 'extension', 'service', 'theme'
- 'enabled' is present but not a boolean
- a 'preload' entry is neither a string nor an object with a 'path' field

## Things you can try
- Compare against a known-good descriptor of the same type
- Legacy 'sources' lists are still accepted and upgraded automatically`,
	}

	templateNotFoundIssue = &Issue{
		id:    TemplateNotFoundId,
		topic: "template-missing",
		mdMsg: `
# An output template is missing

Settings scripts and web-server config fragments are produced from
templates. The built-in templates are embedded in the binary; a custom
template path configured under 'build.templates' must exist on disk.

## Things you can try
- Remove the 'build.templates' override to fall back to the embedded set
- Check the configured path for typos`,
	}

	bundlerNotFoundIssue = &Issue{
		id:    BundlerNotFoundId,
		topic: "bundler-missing",
		mdMsg: `
# The bundler executable could not be found

The build tasks delegate all module resolution and chunking to an external
bundler, located through 'build.bundler' in the configuration tree (falling
back to 'PATH' lookup).

## Things you can try
- Install the platform toolchain in the workspace:
~~~
$ npm install
~~~
- Point 'build.bundler' at an absolute path`,
	}

	outputDirMissingIssue = &Issue{
		id:    OutputDirMissingId,
		topic: "output-dir",
		mdMsg: `
# The output directory does not exist

Generated settings and manifests are written into '<root>/dist' and
'<root>/server'. Neither directory is created implicitly by the settings
tasks.

## Things you can try
~~~
$ webdesk build
~~~
which creates the distribution layout before writing into it.`,
	}

	issues = map[Id]*Issue{
		FragmentParseFailedId: fragmentParseFailedIssue,
		DescriptorNotFoundId:  descriptorNotFoundIssue,
		DescriptorInvalidId:   descriptorInvalidIssue,
		TemplateNotFoundId:    templateNotFoundIssue,
		BundlerNotFoundId:     bundlerNotFoundIssue,
		OutputDirMissingId:    outputDirMissingIssue,
	}
)

// Lookup returns the documented issue for id, or nil if none exists.
func Lookup(id Id) *Issue {
	return issues[id]
}

// LookupTopic returns the documented issue whose topic matches, or nil.
func LookupTopic(topic string) *Issue {
	for _, i := range issues {
		if i.topic == topic {
			return i
		}
	}
	return nil
}

// Topics returns all explainable topics in sorted order.
func Topics() []string {
	all := maps.Values(issues)
	topics := make([]string, 0, len(all))
	for _, i := range all {
		topics = append(topics, i.topic)
	}
	slices.Sort(topics)
	return topics
}
