package imagine

// Credential carries the token used against the remote inference router and
// an optional provider override for routing. An empty token is a recognized
// mode (demo mode), not an error.
type Credential struct {
	Token    string
	Provider string
}

type ArtifactKind string

const (
	KindImage ArtifactKind = "image"
	KindVideo ArtifactKind = "video"
)

// ArtifactSource tags where the bytes of a result came from.
type ArtifactSource string

const (
	// SourceRemote means the remote inference call produced the artifact.
	SourceRemote ArtifactSource = "remote"
	// SourcePlaceholder means the artifact was synthesized locally.
	SourcePlaceholder ArtifactSource = "placeholder"
	// SourceNone means no artifact could be produced at all; Bytes is empty
	// and Status explains why. Callers must treat this as "nothing to
	// display", not a failure.
	SourceNone ArtifactSource = "none"
)

// GenerationResult is the terminal outcome of a generation call. It is
// immutable once returned: the orchestrator hands it to the gallery and the
// caller and never touches it again.
type GenerationResult struct {
	Bytes  []byte
	Kind   ArtifactKind
	MIME   string
	Source ArtifactSource

	// Status is a human-readable note for display. Empty on a clean remote
	// generation; every degraded path sets it.
	Status string
}
