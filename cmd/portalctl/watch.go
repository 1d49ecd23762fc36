package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"jobportal-client/internal/channel"
	"jobportal-client/internal/common/observability"
	"jobportal-client/internal/models"
	"jobportal-client/internal/session"
	"jobportal-client/internal/toast"
)

func newWatchCmd(a **app) *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay connected to the realtime channel and print events",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a

			token := app.store.Token()
			if token == "" {
				return errors.New("not logged in")
			}

			obs := observability.New(app.cfg.App.Name)
			defer obs.Shutdown()

			if app.cfg.Metrics.Enabled {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", promhttp.Handler())
					if err := http.ListenAndServe(app.cfg.Metrics.Address, mux); err != nil {
						app.log.WithError(err).Warn("metrics endpoint failed", nil)
					}
				}()
				app.log.Info("metrics endpoint listening", map[string]interface{}{
					"address": app.cfg.Metrics.Address,
				})
			}

			client := channel.NewClient(app.cfg.Channel, app.client.Notifications(), app.toasts, obs, app.log)
			defer client.Close()

			client.OnStatus(func(state channel.State) {
				fmt.Printf("-- channel %s\n", state)
			})
			client.OnMessage(func(msg models.ChannelMessage) {
				fmt.Printf("[%s] %s: %s\n", msg.Room, msg.Author, msg.Body)
			})
			app.toasts.Subscribe(func(active []toast.Toast) {
				if len(active) == 0 {
					return
				}
				latest := active[len(active)-1]
				fmt.Printf("** %s: %s\n", latest.Kind, latest.Message)
			})

			if room != "" {
				client.OnStatus(func(state channel.State) {
					if state == channel.StateConnected {
						client.JoinRoom(room)
					}
				})
			}

			// Follow the session: a forced logout mid-watch severs the
			// channel instead of retrying with a dead credential.
			app.store.Subscribe(func(sess session.Session) {
				client.SetCredential(sess.Token)
			})
			client.SetCredential(token)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop
			fmt.Println("\nShutting down")
			return nil
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "chat room to join once connected")
	return cmd
}
