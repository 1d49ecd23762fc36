package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"jobportal-client/internal/channel"
)

func newNotificationsCmd(a **app) *cobra.Command {
	var markRead string

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications, optionally acknowledging one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if markRead != "" {
				if err := acknowledgeNotification(*a, markRead); err != nil {
					return err
				}
				fmt.Printf("Marked %s as read\n", markRead)
			}

			notifications, err := (*a).client.Notifications().List(cmd.Context())
			if err != nil {
				return friendly(err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tMESSAGE\tWHEN\tREAD")
			now := time.Now()
			for _, n := range notifications {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
					n.ID, n.Title, n.Message, n.Age(now), n.IsRead)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&markRead, "mark-read", "", "notification id to acknowledge")
	return cmd
}

// acknowledgeNotification delivers a read receipt, which travels over the
// realtime channel rather than REST. The connection is brought up just long
// enough to emit it.
func acknowledgeNotification(a *app, id string) error {
	token := a.store.Token()
	if token == "" {
		return errors.New("not logged in")
	}

	client := channel.NewClient(a.cfg.Channel, a.client.Notifications(), nil, nil, a.log)
	defer client.Close()

	client.SetCredential(token)
	deadline := time.Now().Add(10 * time.Second)
	for client.Status() != channel.StateConnected {
		if time.Now().After(deadline) {
			return errors.New("could not reach the realtime channel")
		}
		time.Sleep(50 * time.Millisecond)
	}

	client.MarkNotificationRead(id)
	// Give the frame a moment to flush before teardown.
	time.Sleep(200 * time.Millisecond)
	return nil
}
