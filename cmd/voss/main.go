package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/samber/do"

	"github.com/voss-lang/voss/internal/config"
	"github.com/voss-lang/voss/internal/packages"
	"github.com/voss-lang/voss/internal/repl"
	"github.com/voss-lang/voss/internal/source"
)

const usageText = `Usage: voss COMMAND [arguments]

Commands:
  repl                 Start the interactive session
  serve [--addr ADDR]  Serve the editor protocol over TCP
  connect ADDR         Connect to a running server
  init                 Initialize the state directory
  fetch                Fetch all dependencies from voss.toml
  add NAME REPO [REF]  Add a GitHub dependency and fetch it
  list                 List cached packages
  log                  Show the last state commit
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	injector := buildInjector()
	defer injector.Shutdown()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "repl":
		os.Exit(cmdRepl(injector))
	case "serve":
		os.Exit(cmdServe(injector, args))
	case "connect":
		os.Exit(cmdConnect(args))
	case "init":
		os.Exit(cmdInit())
	case "fetch":
		os.Exit(cmdFetch(injector))
	case "add":
		os.Exit(cmdAdd(injector, args))
	case "list":
		os.Exit(cmdList(injector))
	case "log":
		os.Exit(cmdLog())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func buildInjector() *do.Injector {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*config.Tooling, error) {
		return config.LoadTooling(config.StateDir())
	})

	do.Provide(injector, func(i *do.Injector) (*packages.Index, error) {
		cfg := do.MustInvoke[*config.Tooling](i)
		dir := filepath.Join(config.StateDir(), "packages")
		if cfg.CacheDir != "" {
			dir = cfg.CacheDir
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return packages.OpenIndex(filepath.Join(dir, "index.db"))
	})

	do.Provide(injector, func(i *do.Injector) (*packages.PackageManager, error) {
		cfg := do.MustInvoke[*config.Tooling](i)
		pm := packages.NewPackageManager(cfg)
		if index, err := do.Invoke[*packages.Index](i); err == nil {
			pm.SetIndex(index)
		}
		return pm, nil
	})

	do.Provide(injector, func(i *do.Injector) (*repl.Interp, error) {
		return repl.NewInterp(), nil
	})

	return injector
}

func cmdRepl(injector *do.Injector) int {
	interp := do.MustInvoke[*repl.Interp](injector)
	cfg, err := do.Invoke[*config.Tooling](injector)
	if err != nil {
		cfg = config.DefaultTooling()
	}
	return repl.NewTerminal(interp, cfg).Run()
}

func cmdServe(injector *do.Injector, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "127.0.0.1:7459", "listen address")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	interp := do.MustInvoke[*repl.Interp](injector)
	server := repl.NewServer(interp)

	bound, err := server.Listen(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("listening on %s\n", bound)

	if err := server.Serve(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func cmdConnect(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: voss connect ADDR")
		return 2
	}
	if err := repl.RunClient(args[0], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func cmdInit() int {
	stateDir := config.StateDir()

	if err := source.InitRepo(stateDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := config.SaveTooling(stateDir, config.DefaultTooling()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("initialized %s\n", stateDir)
	return 0
}

func cmdFetch(injector *do.Injector) int {
	pm := do.MustInvoke[*packages.PackageManager](injector)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	manifest, err := packages.LoadManifest(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(manifest.Dependencies) == 0 {
		fmt.Println("no dependencies in " + packages.ManifestFileName)
		return 0
	}

	lock, err := packages.LoadLock(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if lock == nil {
		lock = &packages.LockFile{}
	}

	failed := false
	for name, dep := range manifest.Dependencies {
		// The lock pins the ref from the previous resolution.
		if locked := lock.LockedRef(name); locked != "" && dep.Simple == "" && dep.Version == "" {
			dep.Version = locked
		}

		path, err := pm.EnsureDependency(name, dep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch %s: %v\n", name, err)
			failed = true
			continue
		}
		fmt.Printf("%s -> %s\n", name, path)

		if ref, ok := dep.Ref(); ok {
			lock.SetLockedRef(name, ref)
		}
	}

	if err := packages.SaveLock(cwd, lock); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

func cmdAdd(injector *do.Injector, args []string) int {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: voss add NAME OWNER/REPO [REF]")
		return 2
	}
	name, repo := args[0], args[1]
	ref := ""
	if len(args) == 3 {
		ref = args[2]
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	manifest, err := packages.LoadManifest(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if manifest.Dependencies == nil {
		manifest.Dependencies = make(map[string]packages.Dependency)
	}

	dep := packages.Dependency{GitHub: repo, Version: ref}
	manifest.Dependencies[name] = dep

	pm := do.MustInvoke[*packages.PackageManager](injector)
	path, err := pm.EnsureDependency(name, dep)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := packages.SaveManifest(cwd, manifest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("added %s -> %s\n", name, path)
	return 0
}

func cmdList(injector *do.Injector) int {
	index, err := do.Invoke[*packages.Index](injector)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	entries, err := index.All()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Println("no cached packages")
		return 0
	}

	for _, entry := range entries {
		fmt.Printf("%s %s (%s) %s\n", entry.Name, entry.Ref, entry.Source,
			entry.FetchedAt.Format("2006-01-02"))
	}
	return 0
}

func cmdLog() int {
	info, err := source.LastCommit(config.StateDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("%s %s (%s, %s)\n", info.ShortHash, info.Message, info.Author, info.Date)
	return 0
}
