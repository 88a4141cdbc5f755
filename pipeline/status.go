package pipeline

// Step labels, as surfaced in progress snapshots and partial results.
const (
	StepBasic     = "Creating basic record"
	StepUpload    = "Uploading to IPFS"
	StepAnchor    = "Sending to Avalanche"
	StepQR        = "Generating QR code"
	StepCompleted = "Completed"
)

// ProgressSnapshot is the derived pipeline-progress view of a
// certificate, computed from the persisted nullable fields. It is never
// stored.
type ProgressSnapshot struct {
	CertificateID        string `json:"certificate_id"`
	BasicCreated         bool   `json:"basic_created"`
	UploadedToIPFS       bool   `json:"uploaded_to_ipfs"`
	AnchoredToBlockchain bool   `json:"anchored_to_blockchain"`
	QRGenerated          bool   `json:"qr_generated"`
	CurrentStep          string `json:"current_step"`
	Error                string `json:"error,omitempty"`
}

// ValidationSnapshot reports a certificate's completeness. Unlike
// GetStatus it never returns an error: validation is expected to be
// called on possibly-broken records, so an unknown id yields
// {Valid:false, Error}.
type ValidationSnapshot struct {
	CertificateID  string   `json:"certificate_id"`
	Valid          bool     `json:"valid"`
	Complete       bool     `json:"complete"`
	HasImage       bool     `json:"has_image"`
	HasMetadata    bool     `json:"has_metadata"`
	HasTransaction bool     `json:"has_transaction"`
	HasQRCode      bool     `json:"has_qr_code"`
	Issues         []string `json:"issues,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// GetStatus derives the progress snapshot for a certificate. Read-only
// and side-effect free; identical calls on an unchanged certificate
// return identical snapshots.
func (o *Orchestrator) GetStatus(certID string) (*ProgressSnapshot, error) {
	cert, err := o.getCertificate(certID)
	if err != nil {
		return nil, err
	}

	snapshot := &ProgressSnapshot{
		CertificateID:        cert.ID,
		BasicCreated:         true,
		UploadedToIPFS:       cert.ImageHash != nil && cert.MetadataHash != nil,
		AnchoredToBlockchain: cert.TransactionHash != nil,
		QRGenerated:          cert.QRURL != nil,
	}

	switch {
	case !snapshot.UploadedToIPFS:
		snapshot.CurrentStep = StepUpload
	case !snapshot.AnchoredToBlockchain:
		snapshot.CurrentStep = StepAnchor
	case !snapshot.QRGenerated:
		snapshot.CurrentStep = StepQR
	default:
		snapshot.CurrentStep = StepCompleted
	}

	return snapshot, nil
}

// Validate derives the validity snapshot for a certificate.
func (o *Orchestrator) Validate(certID string) *ValidationSnapshot {
	cert, err := o.getCertificate(certID)
	if err != nil {
		return &ValidationSnapshot{CertificateID: certID, Valid: false, Error: err.Error()}
	}

	snapshot := &ValidationSnapshot{
		CertificateID:  cert.ID,
		HasImage:       cert.ImageHash != nil,
		HasMetadata:    cert.MetadataHash != nil,
		HasTransaction: cert.TransactionHash != nil,
		HasQRCode:      cert.QRURL != nil,
	}

	if !snapshot.HasImage {
		snapshot.Issues = append(snapshot.Issues, "missing image hash")
	}
	if !snapshot.HasMetadata {
		snapshot.Issues = append(snapshot.Issues, "missing metadata hash")
	}
	if !snapshot.HasTransaction {
		snapshot.Issues = append(snapshot.Issues, "missing transaction hash")
	}
	if !snapshot.HasQRCode {
		snapshot.Issues = append(snapshot.Issues, "missing qr code")
	}

	snapshot.Complete = len(snapshot.Issues) == 0
	snapshot.Valid = snapshot.Complete

	return snapshot
}
