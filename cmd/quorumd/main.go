package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/quorum"
	quorumd "github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/commands"
	"github.com/iov-one/quorum/commands/server"
)

func helpMessage() {
	fmt.Println("quorumd")
	fmt.Println("          Multisig authorization node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files")
	fmt.Println("derive    Print a group signer or a proposal address")
	fmt.Println("testgen   Write example encodings to a directory")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.quorumd", env QUORUM_HOME)`)
}

func main() {
	conf, err := LoadConfig()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}

	home := flag.String("home", conf.Home, "directory to store files under")
	flag.CommandLine.Usage = helpMessage
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := conf.Logger()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(quorumd.GenInitOptions, logger, *home, rest)
	case "start":
		serveMetrics(conf.MetricsAddr, logger)
		defaults := server.StartConfig{Bind: conf.Bind, Debug: conf.Debug}
		err = server.StartCmd(quorumd.GenerateApp, logger, *home, defaults, rest)
	case "validate":
		err = server.ValidateGenesis(quorumd.Initializers(), rest)
	case "derive":
		err = deriveCmd(os.Stdout, rest)
	case "testgen":
		var examples []commands.Example
		examples, err = quorumd.Examples()
		if err == nil {
			err = commands.TestGenCmd(examples, rest)
		}
	case "version":
		fmt.Println(quorum.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
