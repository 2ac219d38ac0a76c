package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paymesh/apidocs/internal/api"
	"github.com/paymesh/apidocs/internal/config"
	"github.com/paymesh/apidocs/internal/spec"
	"github.com/paymesh/apidocs/internal/tlsutil"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation server",
	Long: `Builds the configured OpenAPI document and serves it with Swagger UI.

The server exposes:
  - /              interactive Swagger UI
  - /openapi.json  the document as JSON
  - /openapi.yaml  the same bytes under a YAML content type
  - /health        service status and endpoint listing

Configuration is loaded from config.yaml in the current directory,
or specify a custom config file with the --config flag.`,
	RunE: runServe,
}

var (
	portFlag       int
	generationFlag string
	basePathFlag   string
	tlsFlag        bool
)

func init() {
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "Override server port")
	serveCmd.Flags().StringVarP(&generationFlag, "generation", "g", "", "Spec generation to serve (v1 or v2)")
	serveCmd.Flags().StringVar(&basePathFlag, "base-path", "", "Mount the documentation under this path prefix")
	serveCmd.Flags().BoolVar(&tlsFlag, "tls", false, "Enable TLS (overrides config)")

	// Bind flags to viper
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("spec.generation", serveCmd.Flags().Lookup("generation"))
	viper.BindPFlag("server.basePath", serveCmd.Flags().Lookup("base-path"))
	viper.BindPFlag("server.tls.enabled", serveCmd.Flags().Lookup("tls"))
}

func runServe(cmd *cobra.Command, args []string) error {
	port := viper.GetInt("server.port")
	host := viper.GetString("server.host")
	basePath := viper.GetString("server.basePath")
	generation := viper.GetString("spec.generation")
	tlsEnabled := viper.GetBool("server.tls.enabled")

	// Override with flags if explicitly set
	if portFlag > 0 {
		port = portFlag
	}
	if tlsFlag {
		tlsEnabled = true
	}

	gen, err := spec.ParseGeneration(generation)
	if err != nil {
		return err
	}

	// Build and check the document before accepting traffic
	doc, err := spec.Build(gen)
	if err != nil {
		return fmt.Errorf("failed to build %s document: %w", gen, err)
	}
	log.Printf("Built %s document %q version %s (%d paths)", doc.Generation, doc.Title(), doc.Version(), doc.PathCount())

	router := api.NewRouter(doc, basePath)

	addr := fmt.Sprintf("%s:%d", host, port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if tlsEnabled {
		startTLSServer(server, host, addr)
	} else {
		startHTTPServer(server, addr)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// startHTTPServer starts the HTTP server in a goroutine
func startHTTPServer(server *http.Server, addr string) {
	go func() {
		log.Printf("Serving API documentation on http://%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()
}

// startTLSServer resolves a certificate and starts the HTTPS server in a goroutine
func startTLSServer(server *http.Server, host, addr string) {
	tlsCfg := config.TLSConfig{
		CertFile:     viper.GetString("server.tls.certFile"),
		KeyFile:      viper.GetString("server.tls.keyFile"),
		AutoGenerate: viper.GetBool("server.tls.autoGenerate"),
		StorePath:    viper.GetString("server.tls.storePath"),
	}

	certManager := tlsutil.NewCertificateManager(tlsCfg, host)
	cert, err := certManager.GetCertificate()
	if err != nil {
		log.Fatalf("Failed to get TLS certificate: %v", err)
	}

	certPath, keyPath := certManager.CertificatePaths()
	log.Printf("Using TLS certificate: %s", certPath)
	log.Printf("Using TLS private key: %s", keyPath)

	server.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{*cert},
		MinVersion:   tls.VersionTLS12,
	}

	go func() {
		log.Printf("Serving API documentation on https://%s", addr)
		if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()
}
