// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"webdesk-cli/pkg/fspath"
)

// Web-server flavors with a config fragment template.
const (
	FlavorApache = "apache"
	FlavorNginx  = "nginx"
)

// proxyRule is one reverse-proxy entry from the tree's server.proxy list.
type proxyRule struct {
	Path   string
	Target string
}

// ServerConf renders the web-server config fragments for every supported
// flavor, substituting the %ROOT%, %MIMES% and %PROXIES% tokens from the
// tree's mime map and proxy rules.
func (b *Builder) ServerConf() error {
	if err := requireDir(b.Runtime.ServerDir()); err != nil {
		return err
	}

	platform := b.targetPlatform()
	docRoot := fspath.ForPlatform(b.Runtime.DistDir(), platform)
	if platform == fspath.Windows {
		docRoot = fspath.EscapeBackslashes(docRoot)
	}

	mimes := b.mimeTypes()
	proxies := b.proxyRules()

	for _, flavor := range []string{FlavorApache, FlavorNginx} {
		tpl, err := b.template(flavor + ".conf.tpl")
		if err != nil {
			return err
		}

		conf := strings.ReplaceAll(tpl, "%ROOT%", docRoot)
		conf = strings.ReplaceAll(conf, "%MIMES%", renderMimes(flavor, mimes))
		conf = strings.ReplaceAll(conf, "%PROXIES%", renderProxies(flavor, proxies))

		out := filepath.Join(b.Runtime.ServerDir(), flavor+".conf")
		if err := b.writeOutput(out, []byte(conf)); err != nil {
			return err
		}
	}

	return nil
}

// mimeTypes returns the tree's mime map (extension → type) as sorted pairs
// for deterministic output.
func (b *Builder) mimeTypes() [][2]string {
	raw := b.Tree.MapAt("mime")

	exts := make([]string, 0, len(raw))
	for ext := range raw {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	pairs := make([][2]string, 0, len(exts))
	for _, ext := range exts {
		if mimeType, ok := raw[ext].(string); ok {
			pairs = append(pairs, [2]string{ext, mimeType})
		}
	}
	return pairs
}

// proxyRules extracts the server.proxy rule list from the tree.
func (b *Builder) proxyRules() []proxyRule {
	value, ok := b.Tree.Get("server.proxy")
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}

	var rules []proxyRule
	for _, elem := range list {
		entry, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		path, _ := entry["path"].(string)
		target, _ := entry["target"].(string)
		if path == "" || target == "" {
			continue
		}
		rules = append(rules, proxyRule{Path: path, Target: target})
	}
	return rules
}

func renderMimes(flavor string, pairs [][2]string) string {
	var sb strings.Builder
	for _, pair := range pairs {
		ext := strings.TrimPrefix(pair[0], ".")
		switch flavor {
		case FlavorApache:
			fmt.Fprintf(&sb, "  AddType %s .%s\n", pair[1], ext)
		case FlavorNginx:
			fmt.Fprintf(&sb, "  %s %s;\n", pair[1], ext)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderProxies(flavor string, rules []proxyRule) string {
	var sb strings.Builder
	for _, rule := range rules {
		switch flavor {
		case FlavorApache:
			fmt.Fprintf(&sb, "ProxyPass \"%s\" \"%s\"\nProxyPassReverse \"%s\" \"%s\"\n",
				rule.Path, rule.Target, rule.Path, rule.Target)
		case FlavorNginx:
			fmt.Fprintf(&sb, "location %s {\n  proxy_pass %s;\n}\n", rule.Path, rule.Target)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
