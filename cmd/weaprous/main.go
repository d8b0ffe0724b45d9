package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.n16f.net/program"
	"go.n16f.net/weaprous/pkg/weaprous"
)

var buildId string

func main() {
	p := program.NewProgram("weaprous", "a minimal HTTP/1.1 application server")

	p.AddOption("c", "cfg", "path", "", "the path of the configuration file")
	p.AddFlag("v", "version", "print the version and exit")

	p.SetMain(run)

	p.ParseCommandLine()
	p.Run()
}

func run(p *program.Program) {
	// Command line
	if p.IsOptionSet("version") {
		version, err := weaprous.Version(buildId)
		if err != nil {
			version = buildId
		}

		fmt.Println(version)
		return
	}

	cfgPath := p.OptionValue("cfg")

	// Configuration
	var cfg weaprous.ServerCfg

	if cfgPath != "" {
		p.Info("loading configuration file %q", cfgPath)

		if err := cfg.Load(cfgPath); err != nil {
			p.Fatal("cannot load configuration from %q: %v", cfgPath, err)
		}
	}

	cfg.BuildId = buildId

	// Server
	server, err := weaprous.NewServer(cfg)
	if err != nil {
		p.Fatal("cannot create server: %v", err)
	}

	if err := server.Start(); err != nil {
		p.Fatal("cannot start server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	signo := <-sigChan
	fmt.Fprintln(os.Stderr)
	p.Info("received signal %d (%v)", signo, signo)

	server.Stop()
}
