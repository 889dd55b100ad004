package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func notificationLine(n model.Notification) string {
	marker := " "
	if n.Unread {
		marker = "*"
	}
	title := n.Title
	if title == "" {
		title = n.Type
	}
	return fmt.Sprintf("%s [%s] %s: %s", marker, n.ID, title, n.Message)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
