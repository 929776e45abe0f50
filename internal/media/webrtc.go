package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"
)

// WebRTCEngine implements Engine on top of a pion peer connection.
//
// SDP/ICE exchange is not handled here; the host completes negotiation by
// pairing LocalDescription with ApplyRemoteDescription. The call state
// machine only ever sees the Engine interface.
type WebRTCEngine struct {
	mu sync.Mutex

	cfg webrtc.Configuration
	pc  *webrtc.PeerConnection

	audioTrack  *webrtc.TrackLocalStaticSample
	videoTrack  *webrtc.TrackLocalStaticSample
	screenTrack *webrtc.TrackLocalStaticSample
	audioSender *webrtc.RTPSender
	videoSender *webrtc.RTPSender

	muted    bool
	videoOff bool
	sharing  bool

	state   ConnectionState
	onState func(ConnectionState)
}

func NewWebRTCEngine(iceURLs []string) *WebRTCEngine {
	cfg := webrtc.Configuration{}
	if len(iceURLs) > 0 {
		cfg.ICEServers = []webrtc.ICEServer{{URLs: iceURLs}}
	}
	return &WebRTCEngine{cfg: cfg, state: StateDisconnected}
}

func (e *WebRTCEngine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pc != nil {
		return nil
	}

	pc, err := webrtc.NewPeerConnection(e.cfg)
	if err != nil {
		return fmt.Errorf("media: create peer connection: %w", err)
	}

	audio, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus}, "audio", "wellness-call")
	if err != nil {
		_ = pc.Close()
		return fmt.Errorf("media: create audio track: %w", err)
	}
	video, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "video", "wellness-call")
	if err != nil {
		_ = pc.Close()
		return fmt.Errorf("media: create video track: %w", err)
	}

	audioSender, err := pc.AddTrack(audio)
	if err != nil {
		_ = pc.Close()
		return fmt.Errorf("media: add audio track: %w", err)
	}
	videoSender, err := pc.AddTrack(video)
	if err != nil {
		_ = pc.Close()
		return fmt.Errorf("media: add video track: %w", err)
	}

	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		e.setState(mapPeerState(s))
	})

	e.pc = pc
	e.audioTrack = audio
	e.videoTrack = video
	e.audioSender = audioSender
	e.videoSender = videoSender
	return nil
}

func (e *WebRTCEngine) Join(ctx context.Context, roomID string) error {
	e.mu.Lock()
	pc := e.pc
	e.mu.Unlock()
	if pc == nil {
		return fmt.Errorf("media: join %s before initialize", roomID)
	}

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		return fmt.Errorf("media: create offer: %w", err)
	}
	if err := pc.SetLocalDescription(offer); err != nil {
		return fmt.Errorf("media: set local description: %w", err)
	}
	e.setState(StateConnecting)
	return nil
}

func (e *WebRTCEngine) Leave(ctx context.Context) error {
	e.mu.Lock()
	pc := e.pc
	e.pc = nil
	e.audioTrack, e.videoTrack, e.screenTrack = nil, nil, nil
	e.audioSender, e.videoSender = nil, nil
	e.mu.Unlock()

	if pc != nil {
		if err := pc.Close(); err != nil {
			return fmt.Errorf("media: close peer connection: %w", err)
		}
	}
	e.setState(StateDisconnected)
	return nil
}

// LocalDescription returns the pending local SDP for out-of-band exchange.
func (e *WebRTCEngine) LocalDescription() *webrtc.SessionDescription {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pc == nil {
		return nil
	}
	return e.pc.LocalDescription()
}

// ApplyRemoteDescription completes negotiation with the peer's SDP.
func (e *WebRTCEngine) ApplyRemoteDescription(desc webrtc.SessionDescription) error {
	e.mu.Lock()
	pc := e.pc
	e.mu.Unlock()
	if pc == nil {
		return fmt.Errorf("media: no active peer connection")
	}
	if err := pc.SetRemoteDescription(desc); err != nil {
		return fmt.Errorf("media: set remote description: %w", err)
	}
	return nil
}

func (e *WebRTCEngine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	if e.audioSender != nil {
		if e.muted {
			_ = e.audioSender.ReplaceTrack(nil)
		} else {
			_ = e.audioSender.ReplaceTrack(e.audioTrack)
		}
	}
	return e.muted
}

func (e *WebRTCEngine) ToggleVideo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.videoOff = !e.videoOff
	if e.videoSender != nil && !e.sharing {
		if e.videoOff {
			_ = e.videoSender.ReplaceTrack(nil)
		} else {
			_ = e.videoSender.ReplaceTrack(e.videoTrack)
		}
	}
	return !e.videoOff
}

// ToggleScreenShare swaps the outgoing video track without tearing down the
// peer connection; the camera track is restored when sharing stops.
func (e *WebRTCEngine) ToggleScreenShare() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sharing = !e.sharing
	if e.videoSender == nil {
		return e.sharing
	}
	if e.sharing {
		if e.screenTrack == nil {
			screen, err := webrtc.NewTrackLocalStaticSample(
				webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "screen", "wellness-call")
			if err != nil {
				e.sharing = false
				return false
			}
			e.screenTrack = screen
		}
		_ = e.videoSender.ReplaceTrack(e.screenTrack)
		return true
	}
	if e.videoOff {
		_ = e.videoSender.ReplaceTrack(nil)
	} else {
		_ = e.videoSender.ReplaceTrack(e.videoTrack)
	}
	return false
}

func (e *WebRTCEngine) IsMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *WebRTCEngine) IsVideoEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.videoOff
}

func (e *WebRTCEngine) IsScreenSharing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sharing
}

func (e *WebRTCEngine) State() ConnectionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *WebRTCEngine) OnStateChange(f func(ConnectionState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onState = f
}

func (e *WebRTCEngine) setState(s ConnectionState) {
	e.mu.Lock()
	if e.state == s {
		e.mu.Unlock()
		return
	}
	e.state = s
	f := e.onState
	e.mu.Unlock()
	if f != nil {
		f(s)
	}
}

func mapPeerState(s webrtc.PeerConnectionState) ConnectionState {
	switch s {
	case webrtc.PeerConnectionStateConnecting:
		return StateConnecting
	case webrtc.PeerConnectionStateConnected:
		return StateConnected
	case webrtc.PeerConnectionStateFailed:
		return StateFailed
	default:
		return StateDisconnected
	}
}
