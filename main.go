package main

import (
	"net"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/hush-ha/hushctl/app"
	"github.com/hush-ha/hushctl/httpclient"
	"github.com/hush-ha/hushctl/hush"
	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/model"
	"github.com/hush-ha/hushctl/model/config"
	"github.com/hush-ha/hushctl/module"
	"github.com/hush-ha/hushctl/routines"
	"github.com/hush-ha/hushctl/tui"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type hushctlFlags struct {
	configFile string
	verbosity  string
}

func main() {
	hushFlags := handleFlags()

	// Get config from file
	vi := viper.New()
	vi.SetConfigType("yaml")
	vi.SetConfigName(filepath.Base(hushFlags.configFile))
	vi.AddConfigPath(filepath.Dir(hushFlags.configFile))

	conf := loadConfig(vi)

	// The TUI owns the terminal, logs go to a file
	logFile := conf.LogFile
	if logFile == "" {
		logFile = "hushctl.log"
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fatalLogger := logging.NewLogger("main")
		fatalLogger.Fatal().Err(err).Msg("Unable to open log file")
	}
	defer f.Close()
	logging.InitLogger(f)

	l := logging.NewLogger("main")
	l.Info().
		Str("version", app.ApplicationVersion).
		Str("build_date", app.BuildDate).
		Msg("Starting hushctl")

	if conf.LogLevel != "" {
		if err := logging.SetVerbosity(conf.LogLevel); err != nil {
			l.Error().Err(err).Msg("Invalid log_level in configuration, keeping current verbosity")
		}
	}

	// Only the log verbosity is reloadable at runtime, connection settings
	// need a restart
	vi.WatchConfig()
	vi.OnConfigChange(func(e fsnotify.Event) {
		l := logging.NewLogger("OnConfigChange")
		l.Info().Str("config_file", e.Name).Msg("Reloading configuration")
		reloaded := loadConfig(vi)
		if reloaded.LogLevel != "" {
			if err := logging.SetVerbosity(reloaded.LogLevel); err != nil {
				l.Error().Err(err).Msg("Invalid log_level in configuration")
			}
		}
	})

	httpclient.Init(conf)
	client := hush.NewClient(httpclient.WebSocketClientSingleton)

	program := tea.NewProgram(
		tui.NewApp(client, httpclient.SimpleClientSingleton, tui.CardConfig{
			Title: conf.History.Title,
			Limit: conf.History.Limit,
		}),
		tea.WithAltScreen(),
	)

	// Wire the websocket to the program: data loads on (re)authentication and
	// the history refreshes when the server fires a hush_notification event
	httpclient.WebSocketClientSingleton.OnAuthenticated(func() {
		program.Send(tui.ConnReadyMsg{})
	})
	httpclient.WebSocketClientSingleton.RegisterCallback("event", func(msg model.HassAPIObject) {
		event, ok := msg.(*model.HassEvent)
		if !ok || event.Event.EventType != "hush_notification" {
			return
		}
		program.Send(tui.RefreshMsg{})
	}, model.HassEvent{})

	if err := httpclient.WebSocketClientSingleton.Start(); err != nil {
		l.Fatal().Err(err).Msg("Unable to start websocket client")
	}
	httpclient.WebSocketClientSingleton.SubscribeEvents("hush_notification")

	// Host carries the port for the API URL, the pinger needs the bare host
	pingHost := conf.Connectivity.PingHost
	if pingHost == "" {
		pingHost = conf.HomeAssistant.Host
		if host, _, err := net.SplitHostPort(pingHost); err == nil {
			pingHost = host
		}
	}
	routines.ResetRunnablesList()
	routines.AddRunnable(
		module.NewConnectivityChecker(pingHost, conf.Connectivity.Interval, func(online bool) {
			program.Send(tui.ConnStatusMsg{Online: online})
		}),
		module.NewHistoryRefresher(conf.History.RefreshInterval, func() {
			program.Send(tui.RefreshMsg{})
		}),
	)
	routines.StartAllRunnables()

	if _, err := program.Run(); err != nil {
		l.Error().Err(err).Msg("Program stopped with an error")
	}

	l.Info().Msg("Stopping hushctl")
	routines.StopAllRunnables()
	httpclient.WebSocketClientSingleton.Stop()
	app.RoutinesWG.Wait()
}

func handleFlags() hushctlFlags {
	l := logging.NewLogger("handleFlags")

	defaultConfig, err := config.DefaultConfigFile()
	if err != nil {
		defaultConfig = "hushctl.yaml"
	}

	hushFlags := hushctlFlags{}
	flag.StringVarP(&hushFlags.configFile, "config", "c", defaultConfig, "Specify configuration file to use")
	flag.StringVarP(&hushFlags.verbosity, "verbosity", "v", "info", "Set log verbosity level")

	flag.Parse()

	if hushFlags.configFile == "" {
		l.Fatal().Msg("Configuration file not provided")
	}

	err = logging.SetVerbosity(hushFlags.verbosity)
	if err != nil {
		l.Error().Err(err).Msg("Setting verbosity to default (info)")
		logging.SetVerbosity("info")
	}

	return hushFlags
}

func loadConfig(vi *viper.Viper) config.Hushctl {
	l := logging.NewLogger("loadConfig").With().Str("config_file", vi.ConfigFileUsed()).Logger()
	conf := config.Hushctl{}

	if err := vi.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			l.Fatal().Msg("Unable to read config file")
		}

		l.Fatal().Err(err).Msg("Cannot read config file")
	}

	if err := vi.Unmarshal(&conf); err != nil {
		l.Fatal().Err(err).Msg("Unable to unmarshal config file")
	}

	if !conf.Validate() {
		l.Fatal().Msg("Configuration is incomplete, home_assistant.host and home_assistant.token are required")
	}

	return conf
}
