package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wopp/pkg/errors"
	"github.com/matzehuels/wopp/pkg/integrations/pypi"
	"github.com/matzehuels/wopp/pkg/requirements"
)

// queryOptions holds the flags of the root command.
type queryOptions struct {
	more    bool
	docs    bool
	open    bool
	history int
	add     bool
	copy    bool

	reqDir     string
	reqPattern string
	spec       string
	comment    string
	all        bool
	strict     bool

	refresh bool
	noCache bool
}

// queryCommand creates the root command: query PyPI for a package and
// optionally pin it in requirements files.
func (c *CLI) queryCommand() *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   appName + " <package[op version]>",
		Short: "Query PyPI for package info and manage requirements files",
		Long: `wopp looks up packages on PyPI and keeps requirements files pinned.

Without flags, wopp prints the package's latest version and summary. A
version can be given with a specifier (django==4.2, celery~=5.4).`,
		Example: `  wopp django
  wopp django==4.2 --more
  wopp requests --history 10
  wopp celery --add --spec te --comment workers
  wopp flask --docs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.more, "more", "m", false, "expanded output (dependencies, urls, license, files)")
	cmd.Flags().BoolVarP(&opts.docs, "docs", "d", false, "open documentation (or homepage) in a browser")
	cmd.Flags().BoolVarP(&opts.open, "open", "o", false, "open the PyPI project page in a browser")
	cmd.Flags().IntVarP(&opts.history, "history", "H", 0, "release history: N most recent, -N oldest")
	cmd.Flags().BoolVarP(&opts.add, "add", "a", false, "add or update the package in requirements files")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "C", false, "copy the pinned requirement to the clipboard")
	cmd.Flags().StringVarP(&opts.reqDir, "req-dir", "r", "", "directory to search for requirements files (default from config)")
	cmd.Flags().StringVar(&opts.reqPattern, "req-pattern", "", "glob for requirements files (default from config)")
	cmd.Flags().StringVarP(&opts.spec, "spec", "s", "", "specifier: "+strings.Join(requirements.SpecifierTokens(), "|")+" or ==|<=|>=|~=")
	cmd.Flags().StringVarP(&opts.comment, "comment", "c", "", "comment written above the dependency as \"# <text>\"")
	cmd.Flags().BoolVar(&opts.all, "all", false, "edit every matching file without prompting")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on unparseable lines naming the package")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the HTTP cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the HTTP cache")

	cmd.MarkFlagsMutuallyExclusive("docs", "open")

	_ = cmd.RegisterFlagCompletionFunc("spec", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return requirements.SpecifierTokens(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runQuery(ctx context.Context, arg string, opts queryOptions) error {
	pin := requirements.ParsePackageArg(arg)
	if err := errors.ValidatePythonPackageName(pin.Name); err != nil {
		return err
	}
	if opts.spec != "" {
		if _, err := requirements.LookupSpecifier(opts.spec); err != nil {
			return err
		}
	}

	client, release := c.newPyPIClient(ctx, opts.noCache)
	defer release()

	info, err := c.fetch(ctx, client, pin, opts.refresh)
	if err != nil {
		return err
	}

	switch {
	case opts.docs:
		return c.openURL(ctx, info.DocsURL(), errors.ErrCodeDocsNotFound, "no documentation or homepage listed for %s", info.Name)
	case opts.open:
		return c.openURL(ctx, info.PackageURL, errors.ErrCodePageNotFound, "no PyPI page listed for %s", info.Name)
	}

	if opts.add {
		if err := c.addRequirement(ctx, pin, info, opts); err != nil {
			return err
		}
	} else if opts.history != 0 {
		printHistory(info, opts.history)
	} else {
		printPackage(info, opts.more)
	}

	if opts.copy {
		return c.copyPin(pinFor(pin, info, opts.spec))
	}
	return nil
}

// fetch retrieves package metadata, showing a spinner on interactive
// terminals.
func (c *CLI) fetch(ctx context.Context, client *pypi.Client, pin requirements.Pin, refresh bool) (*pypi.PackageInfo, error) {
	label := pin.Name
	if pin.Version != "" {
		label += " " + pin.Version
	}

	var spin *Spinner
	if c.interactive() {
		spin = newSpinnerWithContext(ctx, "Fetching "+label+" from PyPI...")
		spin.Start()
	}
	prog := newProgress(loggerFromContext(ctx))

	info, err := client.FetchPackage(ctx, pin.Name, pin.Version, refresh)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	prog.done("Fetched " + label + " from PyPI")
	return info, nil
}

func (c *CLI) openURL(ctx context.Context, url string, code errors.Code, format string, args ...any) error {
	if url == "" {
		return errors.New(code, format, args...)
	}
	loggerFromContext(ctx).Debug("opening browser", "url", url)
	if err := c.Opener.Open(ctx, url); err != nil {
		return err
	}
	printSuccess("Opened %s", StyleLink.Render(url))
	return nil
}

func (c *CLI) addRequirement(ctx context.Context, pin requirements.Pin, info *pypi.PackageInfo, opts queryOptions) error {
	spec := opts.spec
	if spec == "" {
		spec = pin.Specifier
	}
	policy := requirements.PolicySkip
	if opts.strict {
		policy = requirements.PolicyStrict
	}

	u := requirements.NewUpdater(c.chooser(opts.all), loggerFromContext(ctx))
	results, err := u.Update(ctx, requirements.Options{
		Package:   pin.Name,
		Version:   info.Version,
		Specifier: spec,
		Comment:   opts.comment,
		Dir:       firstNonEmpty(opts.reqDir, c.cfg.ReqDir),
		Pattern:   firstNonEmpty(opts.reqPattern, c.cfg.ReqPattern),
		Policy:    policy,
	})
	printResults(results)
	return err
}

func (c *CLI) copyPin(text string) error {
	if c.Copy == nil {
		return errors.New(errors.ErrCodeUnsupported, "clipboard is not available")
	}
	if err := c.Copy(text); err != nil {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "copy to clipboard")
	}
	printInfo("Copied %s to clipboard", StyleHighlight.Render(text))
	return nil
}

// pinFor renders the requirement line for info as --add would write it.
func pinFor(pin requirements.Pin, info *pypi.PackageInfo, spec string) string {
	op := pin.Specifier
	if spec != "" {
		if resolved, err := requirements.LookupSpecifier(spec); err == nil {
			op = resolved
		}
	}
	return requirements.Pin{Name: pin.Name, Specifier: op, Version: info.Version}.String()
}

func printPackage(info *pypi.PackageInfo, more bool) {
	printKeyValue("Name", info.Name)
	printKeyValue("Version", StyleNumber.Render(info.Version))
	if info.Summary != "" {
		printKeyValue("Summary", info.Summary)
	}
	if !more {
		return
	}

	printOptional("Homepage", linkOrEmpty(info.HomePage))
	printOptional("Docs", linkOrEmpty(info.DocsURL()))
	printOptional("PyPI", linkOrEmpty(info.PackageURL))
	printOptional("Release", linkOrEmpty(info.ReleaseURL))
	printOptional("License", info.License)
	printOptional("Python", info.RequiresPython)
	printOptional("Author", author(info))

	if len(info.ProjectURLs) > 0 {
		printNewline()
		printTitle("Project URLs")
		labels := make([]string, 0, len(info.ProjectURLs))
		for label := range info.ProjectURLs {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		for _, label := range labels {
			printKeyValue(label, StyleLink.Render(info.ProjectURLs[label]))
		}
	}

	if len(info.Dependencies) > 0 {
		printNewline()
		printTitle(fmt.Sprintf("Dependencies (%d)", len(info.Dependencies)))
		for _, dep := range info.Dependencies {
			printItem(dep)
		}
	}

	if len(info.Files) > 0 {
		printNewline()
		printTitle(fmt.Sprintf("Files (%d)", len(info.Files)))
		for _, f := range info.Files {
			printItem(f.Filename)
			printDetail("%s · %s · %s", f.PackageType, humanize.Bytes(uint64(max(f.Size, 0))), fileAge(f))
		}
	}
}

func printOptional(key, value string) {
	if value != "" {
		printKeyValue(key, value)
	}
}

func linkOrEmpty(url string) string {
	if url == "" {
		return ""
	}
	return StyleLink.Render(url)
}

func author(info *pypi.PackageInfo) string {
	switch {
	case info.Author != "" && info.AuthorEmail != "":
		return info.Author + " <" + info.AuthorEmail + ">"
	case info.Author != "":
		return info.Author
	default:
		return info.AuthorEmail
	}
}

func fileAge(f pypi.File) string {
	if f.UploadTime.IsZero() {
		return "unknown"
	}
	return humanize.Time(f.UploadTime)
}

func printResults(results []requirements.FileResult) {
	for _, r := range results {
		if r.Changed {
			printSuccess("%s %s", r.Decision.Kind, StyleValue.Render(r.Path))
			printDetail("%s", r.Decision.Text)
		} else {
			printInfo("Unchanged %s", StyleDim.Render(r.Path))
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
