package wire

import (
	"errors"
	"testing"
)

func mustAttributes(t *testing.T, b *AttributeBuilder) Attributes {
	t.Helper()
	attrs, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return attrs
}

func TestRequestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "read request",
			req: Request{
				MessageID: 1,
				Operation: OpRead,
				Feature:   FeatureExposure,
			},
		},
		{
			name: "write request",
			req: Request{
				MessageID: 2,
				Operation: OpWrite,
				Feature:   FeatureExposure,
				Params: mustAttributes(t, NewAttributeBuilder().
					Put(AttrExposureMode, uint8(5)).
					Put(AttrExposureISO, uint8(1))),
			},
		},
		{
			name: "invoke request",
			req: Request{
				MessageID: 3,
				Operation: OpInvoke,
				Feature:   FeatureZoom,
				Command:   CmdControlZoom,
				Params: mustAttributes(t, NewAttributeBuilder().
					Put(AttrZoomControlMode, uint8(0)).
					Put(AttrZoomTarget, 2.5)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeRequest(&tt.req)
			if err != nil {
				t.Fatalf("EncodeRequest failed: %v", err)
			}

			decoded, err := DecodeRequest(data)
			if err != nil {
				t.Fatalf("DecodeRequest failed: %v", err)
			}

			if decoded.MessageID != tt.req.MessageID {
				t.Errorf("MessageID mismatch: got %d, want %d", decoded.MessageID, tt.req.MessageID)
			}
			if decoded.Operation != tt.req.Operation {
				t.Errorf("Operation mismatch: got %v, want %v", decoded.Operation, tt.req.Operation)
			}
			if decoded.Feature != tt.req.Feature {
				t.Errorf("Feature mismatch: got %v, want %v", decoded.Feature, tt.req.Feature)
			}
			if decoded.Command != tt.req.Command {
				t.Errorf("Command mismatch: got %d, want %d", decoded.Command, tt.req.Command)
			}
			if len(decoded.Params) != len(tt.req.Params) {
				t.Errorf("Params length: got %d, want %d", len(decoded.Params), len(tt.req.Params))
			}
			if !Equal(decoded, &tt.req) {
				t.Errorf("decoded request differs from original")
			}
		})
	}
}

func TestResponseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		resp Response
	}{
		{name: "success", resp: Response{MessageID: 1, Status: StatusSuccess}},
		{name: "unsupported", resp: Response{MessageID: 7, Status: StatusUnsupported, Message: "burst not available"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeResponse(&tt.resp)
			if err != nil {
				t.Fatalf("EncodeResponse failed: %v", err)
			}
			decoded, err := DecodeResponse(data)
			if err != nil {
				t.Fatalf("DecodeResponse failed: %v", err)
			}
			if *decoded != tt.resp {
				t.Errorf("got %+v, want %+v", *decoded, tt.resp)
			}
			if decoded.IsSuccess() != (tt.resp.Status == StatusSuccess) {
				t.Errorf("IsSuccess mismatch for %v", tt.resp.Status)
			}
		})
	}
}

func TestResponseRequiresMessageID(t *testing.T) {
	_, err := EncodeResponse(&Response{Status: StatusSuccess})
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestNotificationRoundTrip(t *testing.T) {
	notif := Notification{
		Feature: FeaturePhoto,
		Changes: mustAttributes(t, NewAttributeBuilder().
			Put(AttrPhotoMode, uint8(1)).
			Put(AttrPhotoCapabilities, []CapabilityEntry{
				{Modes: []uint8{0, 1}, Formats: []uint8{0}, FileFormats: []uint8{0, 1}, HDR: true},
			})),
	}

	data, err := EncodeNotification(&notif)
	if err != nil {
		t.Fatalf("EncodeNotification failed: %v", err)
	}

	msgType, err := PeekMessageType(data)
	if err != nil {
		t.Fatalf("PeekMessageType failed: %v", err)
	}
	if msgType != MessageTypeNotification {
		t.Errorf("PeekMessageType = %v, want Notification", msgType)
	}

	decoded, err := DecodeNotification(data)
	if err != nil {
		t.Fatalf("DecodeNotification failed: %v", err)
	}
	if decoded.Feature != FeaturePhoto {
		t.Errorf("Feature = %v, want Photo", decoded.Feature)
	}

	caps, err := Get[[]CapabilityEntry](decoded.Changes, AttrPhotoCapabilities)
	if err != nil {
		t.Fatalf("Get capabilities failed: %v", err)
	}
	if len(caps) != 1 || !caps[0].HDR || len(caps[0].FileFormats) != 2 {
		t.Errorf("unexpected capabilities: %+v", caps)
	}
}

func TestDecodeNotificationRejectsRequest(t *testing.T) {
	data, err := EncodeRequest(&Request{MessageID: 4, Operation: OpRead, Feature: FeatureZoom})
	if err != nil {
		t.Fatalf("EncodeRequest failed: %v", err)
	}
	if _, err := DecodeNotification(data); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestPeekMessageType(t *testing.T) {
	req, _ := EncodeRequest(&Request{MessageID: 9, Operation: OpRead, Feature: FeatureCamera})
	resp, _ := EncodeResponse(&Response{MessageID: 9, Status: StatusBusy})

	tests := []struct {
		name string
		data []byte
		want MessageType
	}{
		{"request", req, MessageTypeRequest},
		{"response", resp, MessageTypeResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeekMessageType(tt.data)
			if err != nil {
				t.Fatalf("PeekMessageType failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := PeekMessageType([]byte{0xff}); err == nil {
		t.Error("expected error for malformed data")
	}
}

func TestRequestValidation(t *testing.T) {
	params := mustAttributes(t, NewAttributeBuilder().Put(AttrCameraMode, uint8(1)))

	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid write", Request{MessageID: 1, Operation: OpWrite, Feature: FeatureCamera, Params: params}, false},
		{"valid invoke", Request{MessageID: 1, Operation: OpInvoke, Feature: FeatureCamera, Command: CmdStartRecording}, false},
		{"notification id", Request{MessageID: 0, Operation: OpRead, Feature: FeatureCamera}, true},
		{"invalid operation", Request{MessageID: 1, Operation: 9, Feature: FeatureCamera}, true},
		{"missing feature", Request{MessageID: 1, Operation: OpRead}, true},
		{"empty write", Request{MessageID: 1, Operation: OpWrite, Feature: FeatureCamera}, true},
		{"invoke without command", Request{MessageID: 1, Operation: OpInvoke, Feature: FeatureZoom}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("error %v does not wrap ErrInvalidMessage", err)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	attrs := mustAttributes(t, NewAttributeBuilder().
		Put(AttrAlignmentYaw, 1.5).
		Put(AttrAlignmentYawRange, Range{Min: -5, Max: 5}).
		PutIf(true, AttrAlignmentPitchRange, Range{Min: -3, Max: 3}).
		PutIf(false, AttrAlignmentRoll, 3.0))

	if attrs.Has(AttrAlignmentRoll) {
		t.Error("PutIf(false) should not add the attribute")
	}

	ids := attrs.IDs()
	if len(ids) != 3 || ids[0] != AttrAlignmentYaw || ids[1] != AttrAlignmentYawRange || ids[2] != AttrAlignmentPitchRange {
		t.Errorf("IDs() = %v", ids)
	}

	yaw, err := Get[float64](attrs, AttrAlignmentYaw)
	if err != nil || yaw != 1.5 {
		t.Errorf("Get yaw = %v, %v", yaw, err)
	}

	r, ok := Lookup[Range](attrs, AttrAlignmentYawRange)
	if !ok || r.Min != -5 || r.Max != 5 {
		t.Errorf("Lookup range = %+v, %v", r, ok)
	}

	pr, ok := Lookup[Range](attrs, AttrAlignmentPitchRange)
	if !ok || pr.Min != -3 || pr.Max != 3 {
		t.Errorf("Lookup pitch range = %+v, %v", pr, ok)
	}

	if _, err := Get[float64](attrs, AttrAlignmentPitch); !errors.Is(err, ErrAttributeMissing) {
		t.Errorf("expected ErrAttributeMissing, got %v", err)
	}

	if _, ok := Lookup[string](attrs, AttrAlignmentYaw); ok {
		t.Error("Lookup with mismatched type should fail")
	}
}

func TestAttributeBuilderKeepsFirstError(t *testing.T) {
	_, err := NewAttributeBuilder().
		Put(AttrZoomTarget, make(chan int)).
		Put(AttrZoomControlMode, uint8(1)).
		Build()
	if err == nil {
		t.Fatal("expected encoding error")
	}
}

func TestCBORCompactness(t *testing.T) {
	req := Request{
		MessageID: 12345,
		Operation: OpWrite,
		Feature:   FeatureCamera,
		Params:    mustAttributes(t, NewAttributeBuilder().Put(AttrCameraMode, uint8(1))),
	}

	data, err := EncodeRequest(&req)
	if err != nil {
		t.Fatalf("EncodeRequest failed: %v", err)
	}

	if len(data) > 20 {
		t.Errorf("CBOR encoding too large: %d bytes (expected <= 20)", len(data))
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	msg := map[int]any{
		1:  uint32(1),
		2:  uint8(OpWrite),
		3:  uint8(FeatureCamera),
		5:  map[uint16]any{2: uint8(1)},
		99: "future field",
	}

	data, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded, err := DecodeRequest(data)
	if err != nil {
		t.Fatalf("DecodeRequest should succeed with unknown fields: %v", err)
	}

	mode, err := Get[uint8](decoded.Params, AttrCameraMode)
	if err != nil || mode != 1 {
		t.Errorf("mode = %d, %v", mode, err)
	}
}

func TestEqual(t *testing.T) {
	a := Request{MessageID: 1, Operation: OpRead, Feature: FeatureZoom}
	b := Request{MessageID: 1, Operation: OpRead, Feature: FeatureZoom}
	c := Request{MessageID: 2, Operation: OpRead, Feature: FeatureZoom}

	if !Equal(a, b) {
		t.Errorf("Equal(a, b) should be true")
	}
	if Equal(a, c) {
		t.Errorf("Equal(a, c) should be false")
	}
}

func TestEnumsRoundTrip(t *testing.T) {
	type color uint8
	attrs := make(Attributes)
	if err := attrs.Put(1, Enums(color(3), color(0), color(7))); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	raw, err := Get[[]uint8](attrs, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got := AsEnums[color](raw)
	if len(got) != 3 || got[0] != 3 || got[1] != 0 || got[2] != 7 {
		t.Errorf("got %v, want [3 0 7]", got)
	}
}
