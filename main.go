// Command klondike serves Klondike Solitaire games.
//
// In serve mode it exposes the REST API under /api, live table updates over
// /ws, and the MCP tool set at /mcp. In mcp mode it speaks MCP over stdio so
// an assistant can play, reusing a server on localhost:8080 when one answers
// and otherwise starting a private one on a loopback port.
//
// Unset flags fall back to the environment (see envconfig.go), which may be
// seeded from a .env file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/klondike/api"
	"github.com/wricardo/klondike/game/config"
	"github.com/wricardo/klondike/game/service"
	"github.com/wricardo/klondike/game/session"
	"github.com/wricardo/klondike/transport/mcp"
	"github.com/wricardo/klondike/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "2.0.0"
	AppName = "Klondike Server"
)

const (
	modeServe = "serve"
	modeMCP   = "mcp"
)

var (
	port         = flag.Int("port", 8080, "port for the table API")
	host         = flag.String("host", "localhost", "interface to bind")
	configDir    = flag.String("config-dir", "configs", "directory of game configs such as classic.json (or CONFIG_DIR)")
	debug        = flag.Bool("debug", false, "log file and line for each entry")
	version      = flag.Bool("version", false, "print the version and exit")
	ngrokEnabled = flag.Bool("ngrok", false, "publish the table through an ngrok tunnel (or NGROK_ENABLED)")
	ngrokAuth    = flag.String("ngrok-auth", "", "ngrok auth token (or NGROK_AUTHTOKEN)")
	ngrokDomain  = flag.String("ngrok-domain", "", "reserved ngrok domain (or NGROK_DOMAIN)")

	// sessionMaxAge is how long an idle game survives, from SESSION_MAX_AGE
	sessionMaxAge = defaultSessionMaxAge
)

func init() {
	flag.Usage = func() {
		printUsage(os.Stderr, os.Args[0])
		flag.PrintDefaults()
	}
}

// printUsage writes everything but the flag list
func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "%s v%s: deal and play Klondike Solitaire over HTTP, WebSocket and MCP\n\n", AppName, Version)
	fmt.Fprintf(w, "Usage: %s [OPTIONS] [serve|mcp]\n\n", prog)
	fmt.Fprintf(w, "Modes:\n")
	fmt.Fprintf(w, "  serve   host games at /api/sessions, stream tables on /ws?session=<id>, tools on /mcp (default)\n")
	fmt.Fprintf(w, "  mcp     play over MCP stdio; draw, move and undo are exposed as tools\n")
	fmt.Fprintf(w, "\nA new session deals 28 cards into seven columns and leaves 24 in the stock.\n")
	fmt.Fprintf(w, "Rules such as the undo limit and the double Enter window come from -config-dir.\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s -config-dir ./configs       # serve the bundled classic rules on :8080\n", prog)
	fmt.Fprintf(w, "  %s -port 9090 -ngrok           # share a table with a remote player\n", prog)
	fmt.Fprintf(w, "  %s mcp                         # let an assistant play from its MCP client\n", prog)
	fmt.Fprintf(w, "\nOptions:\n")
}

// resolveMode maps the positional argument, including older spellings, to a mode
func resolveMode(args []string) (string, error) {
	if len(args) == 0 {
		return modeServe, nil
	}
	switch args[0] {
	case "serve", "server", "http":
		return modeServe, nil
	case "mcp", "stdio-mcp", "mcp-stdio":
		return modeMCP, nil
	}
	return "", fmt.Errorf("unknown mode %q, want serve or mcp", args[0])
}

func main() {
	// A missing .env is fine
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	envCfg, err := loadEnvConfig()
	if err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}
	applyEnvConfig(envCfg, explicitFlags())

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	mode, err := resolveMode(flag.Args())
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	gameService, err := initializeServices()
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if mode == modeMCP {
		runStdioMCPWithInternalServer(gameService)
		return
	}
	runHTTPServer(gameService)
}

// mcpHandler answers one JSON-RPC message per POST with the tool server's reply
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// runHTTPServer serves the table API, its WebSocket feed and /mcp until
// SIGINT or SIGTERM, optionally mirrored through an ngrok tunnel.
func runHTTPServer(gameService service.GameService) {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", *host, *port)

	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Start ngrok tunnel if enabled
	if *ngrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()

			authToken := *ngrokAuth
			if authToken == "" {
				log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
				return
			}

			log.Println("Starting ngrok tunnel...")

			domain := *ngrokDomain

			var tunnel ngrokConfig.Tunnel
			if domain != "" {
				tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
				log.Printf("Using custom ngrok domain: %s", domain)
			} else {
				tunnel = ngrokConfig.HTTPEndpoint()
			}

			tun, err := ngrok.Listen(ctx,
				tunnel,
				ngrok.WithAuthtoken(authToken),
			)
			if err != nil {
				log.Printf("Failed to start ngrok tunnel: %v", err)
				return
			}
			defer func() {
				if err := tun.Close(); err != nil {
					log.Printf("Failed to close ngrok tunnel: %v", err)
				}
			}()

			ngrokURL := tun.URL()
			log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
			log.Printf("  REST API (ngrok): %s/api", ngrokURL)
			log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
			log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

			// Serve HTTP through ngrok tunnel
			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				log.Printf("Ngrok server error: %v", err)
			}
			log.Println("Ngrok tunnel closed")
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// initializeServices loads the config directory and starts pruning idle games
func initializeServices() (service.GameService, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	// Sessions live in memory only
	sessionManager := session.NewManager()

	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(sessionManager, sessionMaxAge)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(manager *session.Manager, maxAge time.Duration) {
	ticker := time.NewTicker(cleanupInterval(maxAge))
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(maxAge)
		if removed > 0 {
			log.Printf("[SESSION] cleaned up %d expired sessions", removed)
		}
	}
}

// cleanupInterval checks hourly, or more often for short retention windows
func cleanupInterval(maxAge time.Duration) time.Duration {
	interval := time.Hour
	if half := maxAge / 2; half < interval {
		interval = half
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// runStdioMCPWithInternalServer plays over MCP stdio against the server on
// localhost:8080 when its health check passes, otherwise against a private
// API on a random loopback port.
func runStdioMCPWithInternalServer(gameService service.GameService) {
	var baseURL string
	var httpServer *http.Server
	var listener net.Listener

	// First, try to connect to external API server at localhost:8080
	externalURL := "http://localhost:8080"
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode == http.StatusOK {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		log.Printf("No external API server found, starting internal HTTP server")

		// Start internal HTTP server on a random available port
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}

		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

			hub := websocket.NewHub()
		go hub.Run()

			apiServer := api.NewServer(gameService, hub)

		// Start internal HTTP server in background
		httpServer = &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
