package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"simulation_preview/internal/app/port"
	"simulation_preview/internal/app/service"
	"simulation_preview/internal/client"
	"simulation_preview/internal/domain/entity"
	"simulation_preview/internal/infrastructure/configloader"
	"simulation_preview/internal/infrastructure/metrics"
	networkdefinition "simulation_preview/internal/infrastructure/network/definition"
	"simulation_preview/internal/pkg/logger"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	outputText = "text"
	outputHTML = "html"
	outputJSON = "json"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "preview",
		Short:         "Render simulated balance changes of a pending transaction",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or config/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	cmd.AddCommand(newRenderCmd(opts), newPillCmd(opts), newNetworksCmd(opts))
	return cmd
}

// loadConfig reads the config file when present and falls back to defaults otherwise.
func (o *rootOptions) loadConfig() (*configloader.Config, error) {
	path := o.configPath
	explicit := path != ""
	if !explicit {
		path = configloader.PathFromEnv()
	}

	var cfg *configloader.Config
	if _, err := os.Stat(path); err == nil {
		if cfg, err = configloader.Load(path); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	} else {
		cfg = configloader.Default()
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	// stdout carries the rendered output.
	if err := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: logger.FormatConsole,
		File:   cfg.Logging.File,
		Output: os.Stderr,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

type renderOptions struct {
	file    string
	chain   string
	format  string
	valuate bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a preview from a JSON request file",
		Example: `  preview render --file changes.json --chain-id 1
  preview render --file changes.json --chain-id arbitrum
  cat changes.json | preview render --file - --format html --valuate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, opts, cmd.Flags().Changed("valuate"))
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "request file ({chainId, balanceChanges}), - for stdin")
	cmd.Flags().StringVar(&opts.chain, "chain-id", "", "chain id or network identifier (e.g. 137, polygon), overrides the file")
	cmd.Flags().StringVar(&opts.format, "format", outputText, "output format: text|html|json")
	cmd.Flags().BoolVar(&opts.valuate, "valuate", false, "fill missing fiat amounts from DEX Screener")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readRequest(stdin io.Reader, file string) (port.PreviewRequest, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return port.PreviewRequest{}, fmt.Errorf("read request: %w", err)
	}

	var req port.PreviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		// A bare array of balance changes is accepted too.
		var changes []entity.BalanceChangeInput
		if errArr := json.Unmarshal(data, &changes); errArr != nil {
			return port.PreviewRequest{}, fmt.Errorf("decode request: %w", err)
		}
		req.BalanceChanges = changes
	}
	return req, nil
}

func newNetworks(cfg *configloader.Config) port.NetworkDefinitionProvider {
	return networkdefinition.NewNetworkDefinitionProvider(logger.NewSlogAdapter(), cfg.Preview.NativeBadgeImages)
}

// resolveChainID accepts a numeric chain id or a network identifier. Empty means
// the configured default.
func resolveChainID(networks port.NetworkDefinitionProvider, value string) (uint64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if id, err := strconv.ParseUint(value, 0, 64); err == nil {
		return id, nil
	}
	def, ok := networks.GetNetworkDefinitionByName(value)
	if !ok {
		return 0, fmt.Errorf("%w: %q (see `preview networks`)", service.ErrUnknownNetwork, value)
	}
	return def.ChainID, nil
}

func buildPreviewService(cfg *configloader.Config, networks port.NetworkDefinitionProvider, withPrices bool) port.PreviewService {
	appLogger := logger.NewSlogAdapter()

	var fiat port.FiatValuator
	if withPrices {
		dex := client.NewDEXScreenerClient(
			cfg.DEXScreener.BaseURL,
			time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
			logger.Zap(),
			cfg.TokenPriceSvc.MaxTokensPerBatchRequest,
		)
		fiat = service.NewFiatService(service.NewTokenPriceService(dex, appLogger, cfg.TokenPriceSvc), appLogger)
	}
	return service.NewPreviewService(networks, fiat, appLogger, metrics.NewPreviewMetrics(nil), cfg.Preview)
}

func runRender(ctx context.Context, stdin io.Reader, out io.Writer, cfg *configloader.Config, opts *renderOptions, valuateSet bool) error {
	format := strings.ToLower(opts.format)
	if format != outputText && format != outputHTML && format != outputJSON {
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	req, err := readRequest(stdin, opts.file)
	if err != nil {
		return err
	}
	networks := newNetworks(cfg)
	chainID, err := resolveChainID(networks, opts.chain)
	if err != nil {
		return err
	}
	if chainID != 0 {
		req.ChainID = chainID
	}
	if valuateSet {
		v := opts.valuate
		req.Valuate = &v
	}
	withPrices := cfg.Preview.ValuateByDefault
	if req.Valuate != nil {
		withPrices = *req.Valuate
	}

	if ctx == nil {
		ctx = context.Background()
	}
	preview, err := buildPreviewService(cfg, networks, withPrices).BuildPreview(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownNetwork) {
			return fmt.Errorf("%w (see `preview networks`)", err)
		}
		return err
	}

	switch format {
	case outputHTML:
		_, err = fmt.Fprintln(out, preview.HTML)
	case outputJSON:
		var data []byte
		if data, err = json.MarshalIndent(preview, "", "  "); err == nil {
			_, err = fmt.Fprintln(out, string(data))
		}
	default:
		_, err = fmt.Fprintf(out, "%s (chain %d)\n%s", preview.Network.Name, preview.ChainID, preview.List.Text())
	}
	return err
}

type pillOptions struct {
	standard string
	chain    string
	address  string
	tokenID  string
}

func newPillCmd(root *rootOptions) *cobra.Command {
	opts := &pillOptions{}
	cmd := &cobra.Command{
		Use:   "pill",
		Short: "Print the HTML of a single asset pill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return runPill(cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().StringVar(&opts.standard, "standard", string(entity.TokenStandardNone), "NONE|ERC20|ERC721|ERC1155")
	cmd.Flags().StringVar(&opts.chain, "chain-id", "", "chain id or network identifier (default preview.defaultChainId)")
	cmd.Flags().StringVar(&opts.address, "address", "", "token contract address")
	cmd.Flags().StringVar(&opts.tokenID, "token-id", "", "hex token id for ERC721/ERC1155")
	return cmd
}

func runPill(out io.Writer, cfg *configloader.Config, opts *pillOptions) error {
	standard, err := entity.ParseTokenStandard(opts.standard)
	if err != nil {
		return err
	}
	asset, err := entity.NewAssetIdentifier(standard, opts.address, opts.tokenID)
	if err != nil {
		return err
	}
	networks := newNetworks(cfg)
	chainID, err := resolveChainID(networks, opts.chain)
	if err != nil {
		return err
	}
	pill, err := buildPreviewService(cfg, networks, false).RenderPill(chainID, asset)
	if err != nil {
		return err
	}
	html, err := pill.HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, html)
	return err
}

func newNetworksCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List known networks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			for _, def := range newNetworks(cfg).GetAllNetworkDefinitions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d %-12s %-20s %-6s %s\n", def.ChainID, def.Identifier, def.Name, def.NativeSymbolOrDefault(), def.BadgeImageOrDefault())
			}
			return nil
		},
	}
}
