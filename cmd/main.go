// FakeInput - keyboard and mouse input synthesis
// Plays back key and mouse actions locally or on a remote machine
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"fakeinput/internal/actions"
	"fakeinput/internal/api"
	"fakeinput/internal/autostart"
	"fakeinput/internal/config"
	"fakeinput/internal/input"
	"fakeinput/internal/network"
	"fakeinput/internal/osutils"
	"fakeinput/internal/protocol"
	"fakeinput/internal/tray"
	"fakeinput/internal/ui"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	display    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fakeinput",
		Short:         "Synthesize keyboard and mouse input",
		Long:          "Press keys, click, move the pointer and run commands from scripts, locally or through a remote control server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: per-user config dir)")
	rootCmd.PersistentFlags().StringVar(&display, "display", "", "X display to use (default: $DISPLAY)")

	rootCmd.AddCommand(makeKeysCommand())
	rootCmd.AddCommand(makeDoCommand())
	rootCmd.AddCommand(makeScriptCommand())
	rootCmd.AddCommand(makeServeCommand())
	rootCmd.AddCommand(makeSendCommand())
	rootCmd.AddCommand(makeAutostartCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fakeinput version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() (*config.Manager, error) {
	var (
		cfgMgr *config.Manager
		err    error
	)
	if configPath != "" {
		cfgMgr = config.NewManagerAt(configPath)
	} else if cfgMgr, err = config.NewManager(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config: %v", err)
	}
	return cfgMgr, nil
}

func openDevice(cfg config.Config) (*input.Device, error) {
	opts := input.Options{Display: cfg.Input.Display}
	if display != "" {
		opts.Display = display
	}
	osutils.WarnIfNotElevated()
	return input.Open(opts)
}

func newRunner(dev *input.Device, cfg config.Config) *actions.Runner {
	r := actions.NewRunner(dev, osutils.System{})
	r.Delay = cfg.Input.StepDelay()
	return r
}

// signalContext is cancelled on Ctrl+C or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func makeKeysCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List every symbolic key and how it resolves on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMgr, err := loadConfig()
			if err != nil {
				return err
			}
			dev, err := openDevice(cfgMgr.Get())
			if err != nil {
				return err
			}
			defer dev.Close()

			infos := dev.Describe()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(protocol.KeysResponsePayload{Backend: dev.Layout.Name, Keys: infos})
			}
			printKeys(os.Stdout, dev.Layout.Name, infos)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printKeys(out io.Writer, backend string, infos []input.KeyInfo) {
	fmt.Fprintf(out, "Backend: %s\n\n", backend)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNATIVE\tCODE\tVIRTUAL\tEXT\tNAME")
	for _, k := range infos {
		if !k.Supported {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%s\n", k.Key, k.Name)
			continue
		}
		ext := ""
		if k.Extended {
			ext = "yes"
		}
		fmt.Fprintf(w, "%s\t0x%X\t0x%X\t0x%X\t%s\t%s\n", k.Key, k.Native, k.Code, k.Virtual, ext, k.Name)
	}
	w.Flush()
}

// runLocal plays actions on this machine
func runLocal(acts []actions.Action) error {
	cfgMgr, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := cfgMgr.Get()
	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	ctx, stop := signalContext()
	defer stop()

	steps, err := newRunner(dev, cfg).Execute(ctx, acts)
	if err != nil {
		return fmt.Errorf("stopped after %d of %d steps: %w", steps, len(acts), err)
	}
	log.Printf("Actions: Completed %d steps", steps)
	return nil
}

func makeDoCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "do <action>...",
		Short: "Run actions given as arguments, one script line each",
		Example: `  fakeinput do "chord Ctrl+Alt+T" "wait 500" "tap Return"
  fakeinput do "moveto 960 540" click`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := actions.Parse(strings.Join(args, "\n"))
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Print(actions.Format(acts))
				return nil
			}
			return runLocal(acts)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the parsed actions without running them")
	return cmd
}

// readScript loads a script from a file, stdin ("-") or a saved name
func readScript(cfgMgr *config.Manager, name string, args []string) (string, error) {
	if name != "" {
		script, ok := cfgMgr.GetScript(name)
		if !ok {
			return "", fmt.Errorf("no saved script named %q", name)
		}
		return script, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

func makeScriptCommand() *cobra.Command {
	var (
		name   string
		save   string
		dryRun bool
		list   bool
	)
	cmd := &cobra.Command{
		Use:   "script [file|-]",
		Short: "Run an action script from a file, stdin or the saved scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMgr, err := loadConfig()
			if err != nil {
				return err
			}
			if list {
				for _, n := range cfgMgr.ScriptNames() {
					fmt.Println(n)
				}
				return nil
			}

			script, err := readScript(cfgMgr, name, args)
			if err != nil {
				return err
			}
			acts, err := actions.Parse(script)
			if err != nil {
				return err
			}

			if save != "" {
				cfgMgr.SetScript(save, actions.Format(acts))
				if err := cfgMgr.Save(); err != nil {
					return err
				}
				fmt.Printf("Saved script %q (%d actions)\n", save, len(acts))
				return nil
			}
			if dryRun {
				fmt.Print(actions.Format(acts))
				return nil
			}
			return runLocal(acts)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "run a saved script")
	cmd.Flags().StringVar(&save, "save", "", "save the script under this name instead of running it")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the parsed actions without running them")
	cmd.Flags().BoolVar(&list, "list", false, "list saved scripts")
	return cmd
}

func makeServeCommand() *cobra.Command {
	var (
		listen   string
		port     int
		token    string
		withTray bool
		firewall bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept actions over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMgr, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := cfgMgr.Get()
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.Server.Listen = listen
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("token") {
				cfg.Server.Token = token
			}
			if flags.Changed("tray") {
				cfg.Server.Tray = withTray
			}
			if flags.Changed("firewall") {
				cfg.Server.Firewall = firewall
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config: 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default from config: 18080)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token required from clients")
	cmd.Flags().BoolVar(&withTray, "tray", false, "show a system tray icon")
	cmd.Flags().BoolVar(&firewall, "firewall", false, "open the port in the Windows firewall")
	return cmd
}

func serve(cfg config.Config) error {
	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	if cfg.Server.Token == "" {
		if cfg.Server.Listen != "127.0.0.1" && cfg.Server.Listen != "localhost" {
			log.Printf("Warning: serving on %s without a token", cfg.Server.Listen)
		}
		log.Println("API: No token set, run actions are disabled")
	}
	if cfg.Server.Firewall {
		if err := osutils.EnsureFirewallRule(cfg.Server.Port); err != nil {
			log.Printf("Warning: failed to configure firewall: %v", err)
		}
	}

	srv := api.NewServer(newRunner(dev, cfg), dev, dev.Layout.Name, cfg.Server.Token)
	defer srv.Close()

	ctx, stop := signalContext()
	defer stop()

	if !cfg.Server.Tray {
		return srv.Start(ctx, cfg.Server.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx, cfg.Server.Addr())
	}()
	runTray(ctx, stop, srv, cfg.Server)
	stop()

	select {
	case err := <-errCh:
		return err
	case <-time.After(10 * time.Second):
		return nil
	}
}

// runTray blocks on the main goroutine until Quit is chosen or ctx ends
func runTray(ctx context.Context, stop context.CancelFunc, srv *api.Server, server config.ServerConfig) {
	t := tray.New("FakeInput", "FakeInput remote control")
	t.AddInfoItem("Listening on " + server.Addr())
	t.AddSeparator()
	t.AddMenuItem("Open console", func() {
		host := server.Listen
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
		}
		ui.OpenBrowser(fmt.Sprintf("http://%s/", net.JoinHostPort(host, strconv.Itoa(server.Port))))
	})
	t.AddMenuItem("Release mouse buttons", func() {
		release := actions.NewSequence().
			MouseUp(input.MouseLeft).
			MouseUp(input.MouseMiddle).
			MouseUp(input.MouseRight)
		srv.Run(ctx, protocol.RunPayload{ID: "tray-release", Actions: release.Actions()})
	})
	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		log.Println("Tray: Quit requested")
		stop()
	})

	go func() {
		<-ctx.Done()
		t.Stop()
	}()
	t.Run()
}

func makeSendCommand() *cobra.Command {
	var (
		addr       string
		token      string
		scriptFile string
		keys       bool
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "send [action]...",
		Short: "Run actions on a remote fakeinput server",
		Example: `  fakeinput send --addr 192.168.1.20:18080 --token s3cret "chord Win+L"
  fakeinput send --addr 192.168.1.20:18080 --script login.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMgr, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := cfgMgr.Get()
			if addr == "" {
				addr = cfg.Server.Addr()
			}
			if !cmd.Flags().Changed("token") {
				token = cfg.Server.Token
			}

			ctx, stop := signalContext()
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			client, err := network.Dial(ctx, addr, token)
			if err != nil {
				return err
			}
			defer client.Close()

			if keys {
				table, err := client.Keys(ctx)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}

			req := protocol.RunPayload{Script: strings.Join(args, "\n")}
			if scriptFile != "" {
				script, err := readScript(cfgMgr, "", []string{scriptFile})
				if err != nil {
					return err
				}
				req.Script = script + "\n" + req.Script
			}
			// Parse locally first so mistakes never reach the server.
			if _, err := actions.Parse(req.Script); err != nil {
				return err
			}

			res, err := client.Run(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Remote run %s completed %d steps\n", res.ID, res.Steps)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "server address host:port (default from config)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default from config)")
	cmd.Flags().StringVar(&scriptFile, "script", "", "script file to send before the argument actions")
	cmd.Flags().BoolVar(&keys, "keys", false, "print the remote key table instead of running actions")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "give up after this long")
	return cmd
}

func makeAutostartCommand() *cobra.Command {
	var withTray bool
	cmd := &cobra.Command{
		Use:       "autostart on|off|status",
		Short:     "Start the server when you log in",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			const name = "fakeinput"
			switch args[0] {
			case "on":
				serveArgs := []string{"serve"}
				if withTray {
					serveArgs = append(serveArgs, "--tray")
				}
				if configPath != "" {
					serveArgs = append(serveArgs, "--config", configPath)
				}
				entry, err := autostart.NewEntry(name, serveArgs...)
				if err != nil {
					return err
				}
				if err := autostart.Enable(entry); err != nil {
					return fmt.Errorf("failed to enable autostart: %w", err)
				}
				fmt.Printf("Autostart enabled: %s\n", entry.CommandLine())
			case "off":
				if err := autostart.Disable(name); err != nil {
					return fmt.Errorf("failed to disable autostart: %w", err)
				}
				fmt.Println("Autostart disabled")
			case "status":
				if autostart.IsEnabled(name) {
					fmt.Println("Autostart: enabled")
				} else {
					fmt.Println("Autostart: disabled")
				}
			default:
				return fmt.Errorf("unknown argument %q, expected on, off or status", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withTray, "tray", true, "start the server with a tray icon")
	return cmd
}
