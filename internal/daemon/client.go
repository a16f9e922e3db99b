// Package daemon is the client for the crash daemon on the D-Bus system
// bus. It exposes the three remote calls the reporting workflow needs:
// assembling a report for a crash id, fetching a backend's default settings,
// and submitting a report through one or more backends.
package daemon

import (
	"context"
	"fmt"
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/meztrex/abrt/internal/crashdata"
)

const (
	busName    = "com.redhat.abrt"
	objectPath = "/com/redhat/abrt"
	iface      = "com.redhat.abrt"
)

// Status is the outcome one backend reported for a submission.
type Status struct {
	OK      bool
	Message string
}

// wireItem is a crash item as it travels over the bus.
type wireItem struct {
	Flags   uint32
	Content string
}

// Client talks to the crash daemon. Calls block until the daemon responds;
// no client-side timeout is imposed.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect opens a system-bus connection to the crash daemon.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	return &Client{conn: conn, obj: conn.Object(busName, objectPath)}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// CreateReport asks the daemon to assemble the report data for a crash id.
// An unknown id yields an empty report, which callers treat as not found.
func (c *Client) CreateReport(ctx context.Context, crashID string) (*crashdata.Report, error) {
	var raw map[string]wireItem
	if err := c.obj.CallWithContext(ctx, iface+".CreateReport", 0, crashID).Store(&raw); err != nil {
		return nil, fmt.Errorf("CreateReport call failed: %w", err)
	}

	// The bus delivers a plain map; give the report a stable item order.
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	report := crashdata.New()
	for _, name := range names {
		item := raw[name]
		report.Set(name, item.Content, crashdata.Flags(item.Flags))
	}

	return report, nil
}

// PluginSettings fetches the default configuration a backend reports,
// already merged with the system-wide settings by the daemon.
func (c *Client) PluginSettings(ctx context.Context, name string) (map[string]string, error) {
	var cfg map[string]string
	if err := c.obj.CallWithContext(ctx, iface+".GetPluginSettings", 0, name).Store(&cfg); err != nil {
		return nil, fmt.Errorf("GetPluginSettings call failed for %s: %w", name, err)
	}

	return cfg, nil
}

// Report submits the crash through the given backends with their resolved
// configurations and returns one status per attempted backend.
func (c *Client) Report(ctx context.Context, r *crashdata.Report, reporters []string, settings map[string]map[string]string) (map[string]Status, error) {
	data := make(map[string]wireItem, r.Len())
	for _, name := range r.Names() {
		item, _ := r.Get(name)
		data[name] = wireItem{Flags: uint32(item.Flags), Content: item.Content}
	}

	var raw map[string][]string
	if err := c.obj.CallWithContext(ctx, iface+".Report", 0, data, reporters, settings).Store(&raw); err != nil {
		return nil, fmt.Errorf("Report call failed: %w", err)
	}

	return statusesFromWire(raw), nil
}

// statusesFromWire converts the daemon's per-backend [flag, message] string
// pairs. The flag "0" marks failure; anything else is success.
func statusesFromWire(raw map[string][]string) map[string]Status {
	statuses := make(map[string]Status, len(raw))

	for name, pair := range raw {
		var st Status
		if len(pair) > 0 {
			st.OK = pair[0] != "0"
		}
		if len(pair) > 1 {
			st.Message = pair[1]
		}

		statuses[name] = st
	}

	return statuses
}
