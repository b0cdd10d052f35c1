package rack

// SampleRate is the rate at which the engines are stepped and at which the
// audio is played back.
const SampleRate = 44100

type (
	// AudioBuffer is a buffer of stereo frames.
	AudioBuffer [][2]float32

	// AudioSource fills the whole buffer with the next frames of audio. It is
	// called from the audio goroutine.
	AudioSource func(buf AudioBuffer)

	// AudioCloser stops an audio stream started with AudioContext.Play.
	AudioCloser interface {
		Close() error
	}

	AudioContext interface {
		Play(source AudioSource) AudioCloser
		Close() error
	}
)

// Fill renders exactly frames frames from the source, in chunks of at most
// chunk frames.
func (s AudioSource) Fill(frames, chunk int) AudioBuffer {
	ret := make(AudioBuffer, frames)
	for i := 0; i < frames; i += chunk {
		s(ret[i:min(i+chunk, frames)])
	}
	return ret
}
