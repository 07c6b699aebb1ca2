package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rescp17/yourcontrols/internal/app"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/internal/log"
	"github.com/rescp17/yourcontrols/pkg/discovery"
	"github.com/rescp17/yourcontrols/pkg/ui"
)

var version = "dev"

func main() {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:     "yourcontrols",
		Short:   "Shared cockpit control panel",
		Version: version,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	cmd.AddCommand(runCmd(v, &configPath), configCmd(v, &configPath), discoverCmd())

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func runCmd(v *viper.Viper, configPath *string) *cobra.Command {
	var update string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the control panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *configPath)
			if err != nil {
				return err
			}
			closer, err := log.Init(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() {
				if err := closer.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
				}
			}()
			return run(cmd.Context(), cfg, update)
		},
	}
	cmd.Flags().String("backend", config.BackendNative, "UI backend: native or web")
	cmd.Flags().String("title", "YourControls", "Window title")
	cmd.Flags().String("addr", "127.0.0.1:7780", "Listen address of the web backend")
	cmd.Flags().StringVar(&update, "announce-update", "", "Announce this version as an available update")
	_ = v.BindPFlag("ui.backend", cmd.Flags().Lookup("backend"))
	_ = v.BindPFlag("ui.title", cmd.Flags().Lookup("title"))
	_ = v.BindPFlag("web.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func run(ctx context.Context, cfg config.Config, update string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting", "version", version, "backend", cfg.UI.Backend)
	bridge, err := ui.Setup(cfg.UI.Title, cfg)
	if err != nil {
		return err
	}
	if closer, ok := bridge.Backend.(interface{ Close() }); ok {
		defer closer.Close()
	}
	if cfg.UI.Backend == config.BackendWeb {
		if web, ok := bridge.Backend.(interface{ URL() string }); ok {
			fmt.Printf("Open %s in a browser\n", web.URL())
		}
	}

	session := app.NewSession(bridge, cfg, update)
	host := app.NewHost(bridge, session, cfg.Host)
	if err := host.Run(ctx); err != nil {
		return fmt.Errorf("host loop: %w", err)
	}
	slog.Info("Exiting")
	return nil
}

func configCmd(v *viper.Viper, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *configPath)
			if err != nil {
				return err
			}
			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func discoverCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List web control panels announced on the local network",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			adapter := &discovery.MDNSAdapter{}
			service := fmt.Sprintf("%s.%s.", discovery.ServiceType, discovery.DefaultDomain)
			seen := make(map[string]string)
			for result := range adapter.Discover(ctx, service) {
				if result.Error != nil {
					return result.Error
				}
				for _, s := range result.Services {
					seen[s.Name] = s.URL()
				}
			}

			if len(seen) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No control panels found")
				return nil
			}
			names := make([]string, 0, len(seen))
			for name := range seen {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, seen[name])
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "How long to browse")
	return cmd
}
