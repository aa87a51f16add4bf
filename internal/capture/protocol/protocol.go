// Package protocol decodes the byte-level messages exchanged with a
// BLE-connected scanning dock: framed BGR scan payloads and battery
// notifications.
package protocol

import (
	"errors"
	"fmt"
)

// ServiceUUID, TxCharUUID and RxCharUUID identify the dock's GATT service
// and its notify/write characteristics.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// NumFacelets is the number of stickers the dock reports per scan.
const NumFacelets = 54

// bytesPerFacelet is the wire size of one facelet's BGR sample.
const bytesPerFacelet = 3

// FrameSize is the expected payload length of a scan-frame message.
const FrameSize = NumFacelets * bytesPerFacelet

// MsgType identifies the kind of message a notification payload carries.
type MsgType byte

const (
	MsgTypeScanFrame MsgType = 0x01
	MsgTypeBattery   MsgType = 0x02
)

// Command codes written to the RX characteristic.
const (
	CmdRequestScan    byte = 0x10
	CmdRequestBattery byte = 0x32
	CmdFlashBacklight byte = 0x41
)

// Frame constants: the dock wraps every notification as
// [prefix][length][type][payload...][checksum][suffix1][suffix2].
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
)

// Message is a decoded GATT notification: a type tag plus its raw
// payload, with frame overhead stripped.
type Message struct {
	Type    MsgType
	Payload []byte
}

// ParseMessage validates and strips a raw notification's frame, returning
// its type tag and payload. Frame format:
//
//	[0x2A] [length] [type] [payload...] [checksum] [0x0D] [0x0A]
//
// length counts bytes from the type byte through the checksum, inclusive
// (so length is always payload-size plus 2). checksum is the sum, mod
// 256, of every byte before it.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < 2 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	if length < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	checksumIdx := length + 1
	expectedLen := length + 4
	if len(data) < expectedLen {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, expectedLen, len(data))
	}
	if data[checksumIdx+1] != FrameSuffix1 || data[checksumIdx+2] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var checksum byte
	for i := 0; i < checksumIdx; i++ {
		checksum += data[i]
	}
	if checksum != data[checksumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[checksumIdx], checksum)
	}

	return &Message{Type: MsgType(data[2]), Payload: data[3:checksumIdx]}, nil
}

// BuildCommand frames a no-payload command for the dock's RX
// characteristic: [0x2A] [0x02] [cmd] [checksum] [0x0D] [0x0A]. length is
// 2 because it counts the cmd byte (standing in for type) and the
// checksum byte, with no payload in between.
func BuildCommand(cmd byte) []byte {
	const length = byte(0x02)
	checksum := FramePrefix + length + cmd
	return []byte{FramePrefix, length, cmd, checksum, FrameSuffix1, FrameSuffix2}
}

// ScanFrameEvent is one decoded 54-facelet BGR scan.
type ScanFrameEvent struct {
	BGR [NumFacelets][3]int
}

// DecodeScanFrame decodes a scan-frame payload: 54 facelets, each three
// bytes of B,G,R in the dock's fixed row-major, face-major layout.
func DecodeScanFrame(payload []byte) (*ScanFrameEvent, error) {
	if len(payload) != FrameSize {
		return nil, fmt.Errorf("protocol: scan frame payload must be %d bytes, got %d", FrameSize, len(payload))
	}

	var ev ScanFrameEvent
	for f := 0; f < NumFacelets; f++ {
		off := f * bytesPerFacelet
		ev.BGR[f] = [3]int{int(payload[off]), int(payload[off+1]), int(payload[off+2])}
	}
	return &ev, nil
}

// BatteryEvent mirrors the dock's battery-level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("protocol: battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}
