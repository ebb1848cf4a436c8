package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"github.com/taskpad-dev/taskpad/internal/api"
	"github.com/taskpad-dev/taskpad/internal/config"
	"github.com/taskpad-dev/taskpad/internal/db"
	"github.com/taskpad-dev/taskpad/internal/server"
	"github.com/taskpad-dev/taskpad/internal/tui"
)

func main() {
	configPathFlag := flag.String("config", "", "config file path")
	apiFlag := flag.String("api", "", "task service base URL")
	localeFlag := flag.String("locale", "", "locale for title sorting, e.g. en or da")
	serveFlag := flag.Bool("serve", false, "run the bundled task service alongside the client")
	serveOnlyFlag := flag.Bool("serve-only", false, "run the bundled task service only")
	portFlag := flag.Int("port", 0, "bundled task service port")
	dbPathFlag := flag.String("db", "", "sqlite db path for the bundled service")
	flag.Parse()

	cfgPath, err := resolveConfigPath(*configPathFlag)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg = config.ApplyEnv(cfg)

	if *apiFlag != "" {
		cfg.APIURL = *apiFlag
	}
	if *localeFlag != "" {
		cfg.Locale = *localeFlag
	}
	if *serveFlag || *serveOnlyFlag {
		cfg.ServeEnabled = true
	}
	if *portFlag != 0 {
		cfg.ServePort = *portFlag
	}
	if cfg.ServePort == 0 {
		cfg.ServePort = 8000
	}
	if *dbPathFlag != "" {
		cfg.DBPath = *dbPathFlag
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(cfgPath), "taskpad.db")
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.ServeEnabled {
		store, err := openStore(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}

		addr := fmt.Sprintf("127.0.0.1:%d", cfg.ServePort)
		handler := server.NewServer(store).Handler()
		if *serveOnlyFlag {
			log.Printf("Task service running at http://%s", addr)
			log.Fatal(http.ListenAndServe(addr, handler))
		}

		go func() {
			log.Printf("Task service running at http://%s", addr)
			if err := http.ListenAndServe(addr, handler); err != nil {
				log.Printf("task service error: %v", err)
			}
		}()

		// Point the client at the bundled service unless an explicit
		// override says otherwise.
		if *apiFlag == "" && os.Getenv("TASKPAD_API_URL") == "" {
			cfg.APIURL = "http://" + addr
		}
		waitForService(addr)
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		locale = language.English
	}

	client := api.NewClient(cfg.APIURL)
	if err := tui.Run(client, locale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func openStore(dbPath string) (*db.Store, error) {
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return db.NewStore(sqlDB), nil
}

// waitForService blocks briefly until the bundled service accepts
// connections, so the first Load does not race the listener.
func waitForService(addr string) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
