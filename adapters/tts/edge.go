package tts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

const (
	defaultEdgeEndpoint     = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	defaultEdgeOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
	trustedClientToken      = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	secMSGECVersion         = "1-130.0.2849.68"
	edgeOrigin              = "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold"
	edgeUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36 Edg/130.0.0.0"

	// Seconds between 1601-01-01 and the Unix epoch
	windowsEpochOffset = 11644473600

	edgeTimestampLayout = "Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)"
	edgeHandshakeLimit  = 10 * time.Second
)

// EdgeConfig configures the Microsoft Edge read-aloud backend
type EdgeConfig struct {
	Endpoint     string // Optional: websocket endpoint
	OutputFormat string // Optional: audio format requested in speech.config
}

// EdgeTTS synthesizes speech over the Edge read-aloud websocket protocol.
// Every call opens its own connection and sends a single SSML turn.
type EdgeTTS struct {
	endpoint     string
	outputFormat string
	dialer       *websocket.Dialer
	logger       *zap.Logger
	now          func() time.Time
}

// Ensure EdgeTTS implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*EdgeTTS)(nil)

// NewEdgeTTS creates a new Edge TTS backend
func NewEdgeTTS(config EdgeConfig, logger *zap.Logger) (*EdgeTTS, error) {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = defaultEdgeEndpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid edge tts endpoint: %w", err)
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return nil, fmt.Errorf("edge tts endpoint must use ws or wss, got %q", parsed.Scheme)
	}

	outputFormat := config.OutputFormat
	if outputFormat == "" {
		outputFormat = defaultEdgeOutputFormat
	}

	return &EdgeTTS{
		endpoint:     endpoint,
		outputFormat: outputFormat,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: edgeHandshakeLimit,
		},
		logger: logger,
		now:    time.Now,
	}, nil
}

func (e *EdgeTTS) Name() string {
	return "edge"
}

// Synthesize sends one SSML turn and collects the audio frames until turn.end
func (e *EdgeTTS) Synthesize(ctx context.Context, params repositories.SynthesisParams) ([]byte, error) {
	connectionID := strings.ReplaceAll(uuid.NewString(), "-", "")

	endpoint, err := e.buildURL(connectionID)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Origin", edgeOrigin)
	header.Set("User-Agent", edgeUserAgent)
	header.Set("Pragma", "no-cache")
	header.Set("Cache-Control", "no-cache")

	conn, resp, err := e.dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			e.logger.Warn("Edge TTS handshake rejected",
				zap.Int("statusCode", resp.StatusCode),
				zap.String("response", string(body)))
			return nil, entities.NewSynthesisError(entities.ReasonBackendRejected,
				fmt.Errorf("edge tts handshake rejected with status %d", resp.StatusCode))
		}
		return nil, fmt.Errorf("failed to connect to edge tts: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := conn.WriteMessage(websocket.TextMessage, e.configMessage()); err != nil {
		return nil, e.transportError(ctx, "failed to send speech config", err)
	}

	requestID := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := conn.WriteMessage(websocket.TextMessage, e.ssmlMessage(requestID, params)); err != nil {
		return nil, e.transportError(ctx, "failed to send ssml", err)
	}

	e.logger.Debug("Sent SSML to Edge TTS",
		zap.String("connectionID", connectionID),
		zap.String("voice", params.BackendCode))

	var audio bytes.Buffer
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.ClosePolicyViolation, websocket.CloseTryAgainLater, websocket.CloseInternalServerErr) {
				return nil, entities.NewSynthesisError(entities.ReasonBackendRejected,
					fmt.Errorf("edge tts closed the connection: %w", err))
			}
			return nil, e.transportError(ctx, "failed to read from edge tts", err)
		}

		switch messageType {
		case websocket.TextMessage:
			headers, _ := splitMessage(data)
			if headers["Path"] == "turn.end" {
				if audio.Len() == 0 {
					return nil, entities.NewSynthesisError(entities.ReasonBackendRejected,
						errors.New("edge tts finished without audio"))
				}
				e.logger.Debug("Edge TTS turn finished",
					zap.String("connectionID", connectionID),
					zap.Int("totalBytes", audio.Len()))
				return audio.Bytes(), nil
			}

		case websocket.BinaryMessage:
			if len(data) < 2 {
				return nil, entities.NewSynthesisError(entities.ReasonBackendRejected,
					errors.New("edge tts sent a truncated binary frame"))
			}
			headerLength := int(binary.BigEndian.Uint16(data[:2]))
			if 2+headerLength > len(data) {
				return nil, entities.NewSynthesisError(entities.ReasonBackendRejected,
					errors.New("edge tts binary header exceeds frame"))
			}
			headers := parseHeaders(data[2 : 2+headerLength])
			if headers["Path"] == "audio" {
				audio.Write(data[2+headerLength:])
			}
		}
	}
}

// transportError prefers the context error so a deadline is reported as one
func (e *EdgeTTS) transportError(ctx context.Context, msg string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", msg, ctxErr)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (e *EdgeTTS) buildURL(connectionID string) (string, error) {
	u, err := url.Parse(e.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid edge tts endpoint: %w", err)
	}

	q := u.Query()
	q.Set("TrustedClientToken", trustedClientToken)
	q.Set("Sec-MS-GEC", secMSGEC(e.now()))
	q.Set("Sec-MS-GEC-Version", secMSGECVersion)
	q.Set("ConnectionId", connectionID)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (e *EdgeTTS) timestamp() string {
	return e.now().UTC().Format(edgeTimestampLayout)
}

func (e *EdgeTTS) configMessage() []byte {
	return []byte(fmt.Sprintf(
		"X-Timestamp:%s\r\nContent-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n"+
			`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":"%s"}}}}`+"\r\n",
		e.timestamp(), e.outputFormat))
}

func (e *EdgeTTS) ssmlMessage(requestID string, params repositories.SynthesisParams) []byte {
	return []byte(fmt.Sprintf(
		"X-RequestId:%s\r\nContent-Type:application/ssml+xml\r\nX-Timestamp:%sZ\r\nPath:ssml\r\n\r\n%s",
		requestID, e.timestamp(), buildSSML(params)))
}

func buildSSML(params repositories.SynthesisParams) string {
	lang := params.LanguageTag
	if lang == "" {
		lang = "en-US"
	}

	var text bytes.Buffer
	xml.EscapeText(&text, []byte(params.Text))

	return fmt.Sprintf(
		"<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='%s'>"+
			"<voice name='%s'><prosody pitch='+0Hz' rate='%s' volume='%s'>%s</prosody></voice></speak>",
		lang, params.BackendCode, RatePercent(params.Rate), VolumePercent(params.Volume), text.String())
}

// RatePercent converts a speed multiplier to the Edge relative form: 1.5 -> "+50%"
func RatePercent(rate float64) string {
	return relativePercent(rate - 1)
}

// VolumePercent converts a 0..1 volume to the Edge relative form: 0.8 -> "-20%"
func VolumePercent(volume float64) string {
	return relativePercent(volume - 1)
}

func relativePercent(delta float64) string {
	return fmt.Sprintf("%+d%%", int(math.Round(delta*100)))
}

// secMSGEC derives the clock-based token the service requires, rounded to five minutes
func secMSGEC(now time.Time) string {
	ticks := now.Unix() + windowsEpochOffset
	ticks -= ticks % 300
	ticks *= 10_000_000

	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s", ticks, trustedClientToken)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// splitMessage separates the header block of a text frame from its body
func splitMessage(data []byte) (map[string]string, []byte) {
	head, body, _ := bytes.Cut(data, []byte("\r\n\r\n"))
	return parseHeaders(head), body
}

func parseHeaders(block []byte) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(string(block), "\r\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers
}
