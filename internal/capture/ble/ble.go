// Package ble connects to a BLE scanning dock and implements
// capture.Device over it: discover, connect, subscribe to
// notifications, and request scans over GATT.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubematch/internal/capture"
	"github.com/SeamusWaldron/cubematch/internal/capture/protocol"
	"github.com/SeamusWaldron/cubematch/internal/geometry"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to dock")
	ErrAlreadyConnected = errors.New("ble: already connected to a dock")
)

var (
	serviceUUID = bluetooth.NewUUID(mustParseUUID(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(mustParseUUID(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(mustParseUUID(protocol.RxCharUUID))
)

func mustParseUUID(s string) [16]byte {
	var uuid [16]byte
	clean := strings.ReplaceAll(s, "-", "")
	for i := 0; i < 16; i++ {
		var b byte
		fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b)
		uuid[i] = b
	}
	return uuid
}

// ScanResult describes a discovered dock, before connection.
type ScanResult struct {
	Name    string
	Address bluetooth.Address
	RSSI    int16
}

// Dock is a capture.Device backed by a BLE-connected scanning dock. Each
// Scan call writes a scan-request command and waits for the dock's next
// scan-frame notification. Concurrent Scan calls are not serialized:
// each writes its own request and takes whichever frame arrives next.
type Dock struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	txChar  bluetooth.DeviceCharacteristic
	rxChar  bluetooth.DeviceCharacteristic

	mu        sync.Mutex
	connected bool
	battery   int

	frames  chan capture.Frame
	scanErr chan error
}

// Discover scans for docks advertising the given name prefix (matched
// case-insensitively) for up to timeout.
func Discover(ctx context.Context, namePrefix string, timeout time.Duration) ([]ScanResult, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("ble: enable adapter: %w", err)
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = map[string]bool{}
	)
	done := make(chan struct{})

	go func() {
		adapter.Scan(func(_ *bluetooth.Adapter, res bluetooth.ScanResult) {
			addr := res.Address.String()
			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true
			if strings.HasPrefix(strings.ToLower(res.LocalName()), strings.ToLower(namePrefix)) {
				results = append(results, ScanResult{Name: res.LocalName(), Address: res.Address, RSSI: res.RSSI})
			}
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	adapter.StopScan()
	<-done

	return results, nil
}

// Connect connects to a discovered dock and subscribes to its
// notification characteristic.
func Connect(result ScanResult) (*Dock, error) {
	adapter := bluetooth.DefaultAdapter

	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("ble: connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return nil, fmt.Errorf("ble: discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("%w: scanning dock service not found", capture.ErrDeviceNotFound)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return nil, fmt.Errorf("ble: discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	d := &Dock{
		adapter: adapter,
		device:  device,
		txChar:  txChar,
		rxChar:  rxChar,
		battery: -1,
		frames:  make(chan capture.Frame, 1),
		scanErr: make(chan error, 1),
	}

	if err := txChar.EnableNotifications(d.handleNotification); err != nil {
		device.Disconnect()
		return nil, fmt.Errorf("ble: enable notifications: %w", err)
	}

	d.connected = true
	return d, nil
}

// Scan implements capture.Device: it requests a scan and waits for the
// dock to report a complete facelet frame, or for ctx to expire.
func (d *Dock) Scan(ctx context.Context) (capture.Frame, error) {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return capture.Frame{}, ErrNotConnected
	}
	d.mu.Unlock()

	cmd := protocol.BuildCommand(protocol.CmdRequestScan)
	if _, err := d.rxChar.WriteWithoutResponse(cmd); err != nil {
		if _, err = d.rxChar.Write(cmd); err != nil {
			return capture.Frame{}, fmt.Errorf("ble: request scan: %w", err)
		}
	}

	select {
	case f := <-d.frames:
		return f, nil
	case err := <-d.scanErr:
		return capture.Frame{}, err
	case <-ctx.Done():
		return capture.Frame{}, capture.ErrCaptureTimeout
	}
}

// Battery returns the last known battery level, or -1 if unreported.
func (d *Dock) Battery() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.battery
}

// Close implements capture.Device.
func (d *Dock) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil
	}
	d.connected = false
	return d.device.Disconnect()
}

func (d *Dock) handleNotification(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return
	}

	switch msg.Type {
	case protocol.MsgTypeBattery:
		if ev, err := protocol.DecodeBattery(msg.Payload); err == nil {
			d.mu.Lock()
			d.battery = ev.Level
			d.mu.Unlock()
		}
	case protocol.MsgTypeScanFrame:
		ev, err := protocol.DecodeScanFrame(msg.Payload)
		if err != nil {
			select {
			case d.scanErr <- err:
			default:
			}
			return
		}
		var f capture.Frame
		for i := 0; i < geometry.NumFacelets; i++ {
			f[i] = ev.BGR[i]
		}
		select {
		case d.frames <- f:
		default:
		}
	}
}
