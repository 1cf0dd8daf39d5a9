package stripe

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_abc123"

func signedHeader(payload []byte, secret string, at time.Time) string {
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), computeSignature(at.Unix(), payload, secret))
}

func TestConstructEventValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","created":123,"data":{"object":{"id":"cs_1"}}}`)
	header := signedHeader(payload, testSecret, time.Now())

	event, err := ConstructEvent(payload, header, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "checkout.session.completed", event.Type)
}

func TestConstructEventWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"ping"}`)
	header := signedHeader(payload, "whsec_other", time.Now())

	_, err := ConstructEvent(payload, header, testSecret)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestConstructEventTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"ping"}`)
	header := signedHeader(payload, testSecret, time.Now())

	tampered := []byte(`{"id":"evt_2","type":"ping"}`)
	_, err := ConstructEvent(tampered, header, testSecret)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestConstructEventStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"ping"}`)
	old := time.Now().Add(-10 * time.Minute)
	header := signedHeader(payload, testSecret, old)

	_, err := ConstructEvent(payload, header, testSecret)
	assert.ErrorIs(t, err, ErrTimestampTooOld)
}

func TestConstructEventMalformedHeader(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"ping"}`)

	for _, header := range []string{"", "t=abc,v1=def", "v1=deadbeef", "t=12345"} {
		_, err := ConstructEvent(payload, header, testSecret)
		assert.Error(t, err, "header %q", header)
	}
}

func TestConstructEventAcceptsSecondSignature(t *testing.T) {
	// During secret rotation the header carries signatures under both keys.
	payload := []byte(`{"id":"evt_1","type":"ping"}`)
	now := time.Now()
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s",
		now.Unix(),
		computeSignature(now.Unix(), payload, "whsec_old"),
		computeSignature(now.Unix(), payload, testSecret))

	_, err := ConstructEvent(payload, header, testSecret)
	assert.NoError(t, err)
}
