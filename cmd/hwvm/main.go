package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hwvm/hwvm/disk"
	"github.com/hwvm/hwvm/loader"
	"github.com/hwvm/hwvm/ram"
	"github.com/hwvm/hwvm/term"
	"github.com/hwvm/hwvm/vm"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "disk" {
		runDisk(os.Args[2:])
		return
	}
	runEmulator(os.Args[1:])
}

// runDisk implements the "hwvm disk snapshot|restore <dir>" subcommand,
// backing Store.Snapshot/Restore with SYSTEM_HW_DIR as the live disk
// directory.
func runDisk(args []string) {
	if len(args) != 2 {
		log.Fatalf("usage: hwvm disk snapshot|restore <dir>")
	}

	cfg := loadConfig()
	store := disk.NewStore(cfg.hwDir)

	var err error
	switch args[0] {
	case "snapshot":
		err = store.Snapshot(args[1])
	case "restore":
		err = store.Restore(args[1])
	default:
		log.Fatalf("hwvm disk: unknown subcommand %q", args[0])
	}
	if err != nil {
		log.Fatalf("hwvm disk %v: %v", args[0], err)
	}
}

func runEmulator(args []string) {
	fs := flag.NewFlagSet("hwvm", flag.ExitOnError)

	var debug, verbose bool
	var ramDump string

	fs.BoolVar(&debug, "j", false, "enable instruction trace")
	fs.BoolVar(&debug, "debug", false, "enable instruction trace")
	fs.BoolVar(&verbose, "v", false, "verbose vm logging")
	fs.BoolVar(&verbose, "verbose", false, "verbose vm logging")
	fs.StringVar(&ramDump, "r", "", "dump RAM to <file> on halt")
	fs.StringVar(&ramDump, "ram-dump", "", "dump RAM to <file> on halt")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [-j] [-v] [-r file] <program>\n", os.Args[0])
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	programPath := fs.Arg(0)

	cfg := loadConfig()

	f, err := os.Open(programPath)
	if err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}
	defer f.Close()

	m := ram.New(cfg.ramSize)
	_, err = loader.Load(f, m)
	if err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}

	machine := vm.New(m, disk.NewStore(cfg.hwDir), term.New())
	machine.Debug = debug
	machine.Verbose = verbose

	runErr := machine.Run()

	dumpPath := ramDump
	if dumpPath == "" {
		dumpPath = cfg.ramFile
	}
	if dumpPath != "" {
		if derr := m.DumpFile(dumpPath); derr != nil {
			log.Printf("%v: %v", dumpPath, derr)
		}
	}

	if runErr != nil {
		log.Fatalf("%v", runErr)
	}
}
