package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/docdex"
)

// urlTemplates are the common documentation URL patterns, probed in order.
// First live URL wins.
var urlTemplates = []string{
	"https://%s.readthedocs.io/",
	"https://docs.%s.com/",
	"https://%s.org/docs/",
	"https://%s.org/documentation/",
	"https://github.com/%s/wiki",
	"https://%s.dev/",
	"https://%s.js.org/",
}

// knownDocs maps popular libraries to their documentation roots. A registry
// hit never touches the network.
var knownDocs = map[string]string{
	"react":       "https://react.dev/",
	"vue":         "https://vuejs.org/guide/",
	"angular":     "https://angular.io/docs",
	"svelte":      "https://svelte.dev/docs",
	"nextjs":      "https://nextjs.org/docs",
	"nuxt":        "https://nuxt.com/docs",
	"fastapi":     "https://fastapi.tiangolo.com/",
	"django":      "https://docs.djangoproject.com/",
	"flask":       "https://flask.palletsprojects.com/",
	"express":     "https://expressjs.com/",
	"nodejs":      "https://nodejs.org/docs/",
	"requests":    "https://requests.readthedocs.io/",
	"pandas":      "https://pandas.pydata.org/docs/",
	"numpy":       "https://numpy.org/doc/",
	"scipy":       "https://docs.scipy.org/",
	"matplotlib":  "https://matplotlib.org/stable/",
	"sklearn":     "https://scikit-learn.org/stable/documentation.html",
	"tensorflow":  "https://www.tensorflow.org/api_docs",
	"pytorch":     "https://pytorch.org/docs/",
	"opencv":      "https://docs.opencv.org/",
	"aws":         "https://docs.aws.amazon.com/",
	"gcp":         "https://cloud.google.com/docs",
	"azure":       "https://docs.microsoft.com/azure/",
	"kubernetes":  "https://kubernetes.io/docs/",
	"docker":      "https://docs.docker.com/",
	"redis":       "https://redis.io/documentation",
	"mongodb":     "https://docs.mongodb.com/",
	"postgresql":  "https://www.postgresql.org/docs/",
	"mysql":       "https://dev.mysql.com/doc/",
	"tailwind":    "https://tailwindcss.com/docs",
	"bootstrap":   "https://getbootstrap.com/docs/",
	"material-ui": "https://mui.com/",
	"ant-design":  "https://ant.design/docs/",
	"lodash":      "https://lodash.com/docs/",
	"axios":       "https://axios-http.com/docs/",
	"jest":        "https://jestjs.io/docs/",
	"cypress":     "https://docs.cypress.io/",
	"webpack":     "https://webpack.js.org/concepts/",
	"vite":        "https://vitejs.dev/guide/",
	"typescript":  "https://www.typescriptlang.org/docs/",
}

// Ensure Resolver implements docdex.Resolver at compile time.
var _ docdex.Resolver = (*Resolver)(nil)

// Resolver maps a library name to a candidate documentation root. Strategy
// order: known-sites registry (no network), common URL templates, GitHub
// fallback. Probes succeed only on HTTP 200; probe network errors count as
// "not found" and are never propagated.
type Resolver struct {
	Fetcher docdex.Fetcher
	Logger  *slog.Logger

	// Registry overrides the built-in known-sites registry when non-nil.
	Registry map[string]string
}

// Resolve returns the documentation root for a library.
func (r *Resolver) Resolve(ctx context.Context, library string) (*docdex.LibraryTarget, error) {
	name := strings.ToLower(strings.TrimSpace(library))
	if name == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "library name required")
	}

	registry := r.Registry
	if registry == nil {
		registry = knownDocs
	}
	if url, ok := registry[name]; ok {
		return &docdex.LibraryTarget{Name: library, URL: url, Method: docdex.DiscoveryRegistry}, nil
	}

	for _, tmpl := range urlTemplates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		url := fmt.Sprintf(tmpl, name)
		if r.Fetcher.Exists(ctx, url) {
			r.log("discovered documentation by pattern", "library", library, "url", url)
			return &docdex.LibraryTarget{Name: library, URL: url, Method: docdex.DiscoveryPattern}, nil
		}
	}

	for _, url := range githubCandidates(name) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Fetcher.Exists(ctx, url) {
			r.log("discovered documentation on github", "library", library, "url", url)
			return &docdex.LibraryTarget{Name: library, URL: url, Method: docdex.DiscoveryGitHub}, nil
		}
	}

	return nil, docdex.Errorf(docdex.ENOTFOUND, "no documentation found for library %q", library)
}

// githubCandidates returns the GitHub-pattern fallback URLs for a library.
func githubCandidates(name string) []string {
	return []string{
		fmt.Sprintf("https://github.com/%s/%s", name, name),
		fmt.Sprintf("https://github.com/%s", name),
		fmt.Sprintf("https://%s.github.io/", name),
	}
}

func (r *Resolver) log(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Info(msg, args...)
	}
}
