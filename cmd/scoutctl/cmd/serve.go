package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveListen   string
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream robot state over websocket",
	Long: `Connect to the base and expose the decoded state on a websocket endpoint.

Each client connected to /state receives a JSON snapshot every interval.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8589", "listen address")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 100*time.Millisecond, "state push interval")
	rootCmd.AddCommand(serveCmd)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func runServe(cmd *cobra.Command, args []string) error {
	base, err := openBase()
	if err != nil {
		return err
	}
	defer base.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("scoutctl: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(serveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				payload, err := json.Marshal(base.GetRobotState())
				if err != nil {
					log.Printf("scoutctl: marshal state: %v", err)
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}
	})

	srv := &http.Server{Addr: serveListen, Handler: mux}

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		log.Printf("scoutctl: serving state on ws://%s/state", serveListen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	errg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return errg.Wait()
}
