package pipeline

import (
	"certchain/models"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentStore pins blobs and JSON documents to content-addressed
// storage and resolves CIDs to fetchable gateway URLs.
type ContentStore interface {
	UploadFile(data []byte, name string, keyvalues map[string]string) (string, error)
	UploadJSON(v interface{}, name string, keyvalues map[string]string) (string, error)
	GatewayURL(cid string) string
}

// LedgerClient submits a mint request to the external blockchain
// service and returns the raw HTTP status and body. Interpreting the
// response is the orchestrator's job, not the client's.
type LedgerClient interface {
	Mint(req *MintRequest) (int, []byte, error)
}

// QREncoder turns a string payload into a scannable PNG.
type QREncoder interface {
	Encode(payload string, size int) ([]byte, error)
}

// Options carries the environment-derived knobs the pipeline needs.
// Zero values degrade gracefully: an empty FrontendURL yields relative
// verification paths, an empty ExplorerURL omits explorer links.
type Options struct {
	FrontendURL string
	ExplorerURL string
	HttpTimeout time.Duration
}

// Orchestrator drives the four-step certificate pipeline. Each step
// persists its output before the next starts, so a crash at any point
// leaves a resumable record. The orchestrator is the only writer of the
// certificate progress fields.
type Orchestrator struct {
	db     *gorm.DB
	store  ContentStore
	ledger LedgerClient
	qr     QREncoder
	http   *resty.Client
	opts   Options
}

func NewOrchestrator(db *gorm.DB, store ContentStore, ledger LedgerClient, qr QREncoder, opts Options) *Orchestrator {
	timeout := opts.HttpTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		db:     db,
		store:  store,
		ledger: ledger,
		qr:     qr,
		http:   resty.New().SetTimeout(timeout),
		opts:   opts,
	}
}

// CreateInput carries the descriptive fields for a new certificate.
type CreateInput struct {
	RecipientName string    `json:"recipient_name"`
	CourseName    string    `json:"course_name"`
	InstituteID   uint      `json:"institute_id"`
	IssuedAt      time.Time `json:"issued_at"`
}

// UploadResult is the outcome of the IPFS upload step.
type UploadResult struct {
	ImageHash    string `json:"image_hash"`
	MetadataHash string `json:"metadata_hash"`
	ImageURL     string `json:"image_url"`
	MetadataURL  string `json:"metadata_url"`
}

// AnchorResult is the outcome of the blockchain anchoring step.
type AnchorResult struct {
	TransactionHash string `json:"transaction_hash"`
	ArbitrumHash    string `json:"arbitrum_hash,omitempty"`
	ExplorerURL     string `json:"explorer_url,omitempty"`
}

// PipelineResult is the tagged outcome of the composite operation.
// Success carries the full artifact bundle; a partial failure carries
// the failing step, the error, and the on-disk progress so the caller
// can resume via the per-step operations.
type PipelineResult struct {
	Success         bool                `json:"success"`
	CertificateID   string              `json:"certificate_id"`
	Certificate     *models.Certificate `json:"certificate,omitempty"`
	ImageURL        string              `json:"image_url,omitempty"`
	MetadataURL     string              `json:"metadata_url,omitempty"`
	QRURL           string              `json:"qr_url,omitempty"`
	ExplorerURL     string              `json:"explorer_url,omitempty"`
	VerifyURL       string              `json:"verify_url,omitempty"`
	Error           string              `json:"error,omitempty"`
	CurrentStep     string              `json:"current_step,omitempty"`
	Progress        *ProgressSnapshot   `json:"progress,omitempty"`
}

// CreateBasicRecord runs step 1: it validates the input, checks the
// institution reference, and inserts a certificate row with all
// progress fields unset. Re-invocation creates a new certificate;
// callers must not retry blindly.
func (o *Orchestrator) CreateBasicRecord(input CreateInput) (*models.Certificate, error) {
	if strings.TrimSpace(input.RecipientName) == "" {
		return nil, &InputError{Message: "recipient_name is required"}
	}
	if strings.TrimSpace(input.CourseName) == "" {
		return nil, &InputError{Message: "course_name is required"}
	}
	if input.InstituteID == 0 {
		return nil, &InputError{Message: "institute_id is required"}
	}
	if input.IssuedAt.IsZero() {
		return nil, &InputError{Message: "issued_at is required"}
	}

	institution, err := o.getInstitution(input.InstituteID)
	if err != nil {
		return nil, err
	}
	if institution.Status != "APPROVED" {
		return nil, &InputError{Message: "institution is not approved for issuance"}
	}

	cert := models.Certificate{
		ID:            uuid.NewString(),
		RecipientName: strings.TrimSpace(input.RecipientName),
		CourseName:    strings.TrimSpace(input.CourseName),
		InstituteID:   input.InstituteID,
		IssuedAt:      input.IssuedAt,
	}
	if err := o.db.Create(&cert).Error; err != nil {
		return nil, &PersistenceError{Op: "create certificate", Err: err}
	}

	return &cert, nil
}

// UploadToIPFS runs step 2: pin the certificate image, build and pin
// the metadata document embedding the image's resolved URL, then
// persist both CIDs in one update. Safe to retry: a failure leaves the
// certificate in its prior state.
func (o *Orchestrator) UploadToIPFS(certID string, image []byte) (*UploadResult, error) {
	if len(image) == 0 {
		return nil, &InputError{Message: "image is required"}
	}

	cert, err := o.getCertificate(certID)
	if err != nil {
		return nil, err
	}
	institution, err := o.getInstitution(cert.InstituteID)
	if err != nil {
		return nil, err
	}

	imageHash, err := o.store.UploadFile(image, "certificate-"+cert.ID+".png", map[string]string{
		"certificate_id": cert.ID,
		"type":           "certificate-image",
	})
	if err != nil {
		return nil, &UploadError{Op: "pin certificate image", Err: err}
	}
	imageURL := o.store.GatewayURL(imageHash)

	// Metadata embeds the image's resolved URL, so the uploads are
	// sequenced, not parallel.
	metadata := buildMetadata(cert, institution.Name, imageURL, o.verifyURL(cert.ID))
	metadataHash, err := o.store.UploadJSON(metadata, "certificate-"+cert.ID+"-metadata.json", map[string]string{
		"certificate_id": cert.ID,
		"type":           "certificate-metadata",
	})
	if err != nil {
		return nil, &UploadError{Op: "pin certificate metadata", Err: err}
	}

	if err := o.db.Model(cert).Updates(map[string]interface{}{
		"image_hash":    imageHash,
		"metadata_hash": metadataHash,
	}).Error; err != nil {
		return nil, &PersistenceError{Op: "persist ipfs hashes", Err: err}
	}

	return &UploadResult{
		ImageHash:    imageHash,
		MetadataHash: metadataHash,
		ImageURL:     imageURL,
		MetadataURL:  o.store.GatewayURL(metadataHash),
	}, nil
}

// AnchorToBlockchain runs step 3: pre-flight validate the pinned
// content, submit the mint request, extract the transaction hash from
// the variably-shaped response, and persist it. Anchoring is costly and
// irreversible, so a certificate that is already anchored is rejected
// unless force is set.
func (o *Orchestrator) AnchorToBlockchain(certID string, force bool) (*AnchorResult, error) {
	cert, err := o.getCertificate(certID)
	if err != nil {
		return nil, err
	}
	if cert.ImageHash == nil || cert.MetadataHash == nil {
		return nil, &PreconditionError{Message: "certificate must have image and metadata hashes before anchoring"}
	}
	if cert.TransactionHash != nil && !force {
		return nil, &PreconditionError{Message: "certificate is already anchored; pass force to re-anchor"}
	}

	institution, err := o.getInstitution(cert.InstituteID)
	if err != nil {
		return nil, err
	}

	metadataURL := o.store.GatewayURL(*cert.MetadataHash)
	imageURL := o.store.GatewayURL(*cert.ImageHash)

	// Pre-flight: the ledger operation is irreversible, so never submit
	// references that do not resolve to valid content.
	if err := o.preflightValidate(metadataURL); err != nil {
		return nil, err
	}

	payload := &MintRequest{
		Student:     o.lookupRecipient(cert.RecipientName, cert.InstituteID),
		Certificate: MintCertificate{
			Title:       cert.CourseName + " - " + cert.RecipientName,
			Description: "Certificate of completion for " + cert.CourseName,
			CourseName:  cert.CourseName,
			IssuedAt:    cert.IssuedAt.UTC().Format(time.RFC3339),
		},
		Institution: MintInstitution{
			ID:      institution.ID,
			Name:    institution.Name,
			LegalID: institution.LegalID,
			Address: institution.Address,
			Website: institution.Website,
		},
		IPFS: MintIPFS{
			ImageHash:    *cert.ImageHash,
			MetadataHash: *cert.MetadataHash,
			ImageURL:     imageURL,
			MetadataURL:  metadataURL,
			TokenURI:     "ipfs://" + *cert.MetadataHash,
			FrontEndURL:  o.verifyURL(cert.ID),
		},
	}

	status, body, err := o.ledger.Mint(payload)
	if err != nil {
		return nil, &LedgerError{Message: fmt.Sprintf("mint request failed: %v", err)}
	}
	if status < 200 || status > 299 {
		return nil, &LedgerError{Message: "mint request rejected", StatusCode: status, Body: string(body)}
	}

	primary, secondary, err := extractTransactionHashes(body)
	if err != nil {
		return nil, err
	}

	if err := o.db.Model(cert).Update("transaction_hash", primary).Error; err != nil {
		return nil, &PersistenceError{Op: "persist transaction hash", Err: err}
	}

	// The Arbitrum hash is supplementary; failing to persist it must
	// not fail an anchoring that already succeeded on chain.
	if secondary != "" {
		if err := o.db.Model(cert).Update("arbitrum_hash", secondary).Error; err != nil {
			log.Printf("Failed to persist arbitrum hash for certificate %s: %v", cert.ID, err)
		}
	}

	return &AnchorResult{
		TransactionHash: primary,
		ArbitrumHash:    secondary,
		ExplorerURL:     o.explorerTxURL(primary),
	}, nil
}

// GenerateQRCode runs step 4: encode the public verification URL into a
// PNG, pin it, persist the resulting gateway URL. The code encodes the
// verify URL rather than raw chain data so verification logic can
// evolve without reissuing codes.
func (o *Orchestrator) GenerateQRCode(certID string) (string, error) {
	cert, err := o.getCertificate(certID)
	if err != nil {
		return "", err
	}
	if cert.TransactionHash == nil {
		return "", &PreconditionError{Message: "certificate must be anchored before generating a QR code"}
	}

	png, err := o.qr.Encode(o.verifyURL(cert.ID), 256)
	if err != nil {
		return "", &EncodingError{Err: err}
	}

	qrHash, err := o.store.UploadFile(png, "certificate-"+cert.ID+"-qr.png", map[string]string{
		"certificate_id": cert.ID,
		"type":           "certificate-qr",
	})
	if err != nil {
		return "", &UploadError{Op: "pin qr code", Err: err}
	}

	qrURL := o.store.GatewayURL(qrHash)
	if err := o.db.Model(cert).Update("qr_url", qrURL).Error; err != nil {
		return "", &PersistenceError{Op: "persist qr url", Err: err}
	}

	return qrURL, nil
}

// CreateCompleteCertificate runs the full pipeline. A failure at step 1
// is returned as an error outright (no record exists yet). A failure at
// any later step is converted into a partial result: the certificate
// row already exists with everything completed so far persisted, and
// the caller resumes via the per-step operations.
func (o *Orchestrator) CreateCompleteCertificate(input CreateInput, image []byte) (*PipelineResult, error) {
	cert, err := o.CreateBasicRecord(input)
	if err != nil {
		return nil, err
	}

	upload, err := o.UploadToIPFS(cert.ID, image)
	if err != nil {
		return o.partialResult(cert.ID, StepUpload, err), nil
	}

	anchor, err := o.AnchorToBlockchain(cert.ID, false)
	if err != nil {
		return o.partialResult(cert.ID, StepAnchor, err), nil
	}

	qrURL, err := o.GenerateQRCode(cert.ID)
	if err != nil {
		return o.partialResult(cert.ID, StepQR, err), nil
	}

	final, err := o.getCertificate(cert.ID)
	if err != nil {
		return o.partialResult(cert.ID, StepCompleted, err), nil
	}

	return &PipelineResult{
		Success:       true,
		CertificateID: final.ID,
		Certificate:   final,
		ImageURL:      upload.ImageURL,
		MetadataURL:   upload.MetadataURL,
		QRURL:         qrURL,
		ExplorerURL:   anchor.ExplorerURL,
		VerifyURL:     o.verifyURL(final.ID),
		CurrentStep:   StepCompleted,
	}, nil
}

// partialResult packages a mid-pipeline failure together with the
// persisted progress so the caller sees exactly where it stopped.
func (o *Orchestrator) partialResult(certID, step string, cause error) *PipelineResult {
	progress, err := o.GetStatus(certID)
	if err != nil {
		log.Printf("Failed to compute progress for certificate %s: %v", certID, err)
	} else {
		progress.CurrentStep = step
		progress.Error = cause.Error()
	}

	return &PipelineResult{
		Success:       false,
		CertificateID: certID,
		Error:         cause.Error(),
		CurrentStep:   step,
		Progress:      progress,
	}
}

// preflightValidate fetches the pinned metadata, requires a parseable
// JSON body with a non-empty image field, then fetches that image and
// requires an image/* content type. Runs before any ledger call.
func (o *Orchestrator) preflightValidate(metadataURL string) error {
	resp, err := o.http.R().Get(metadataURL)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("metadata is not reachable: %v", err)}
	}
	if !resp.IsSuccess() {
		return &ValidationError{Message: fmt.Sprintf("metadata fetch returned status %d", resp.StatusCode())}
	}

	var metadata struct {
		Image string `json:"image"`
	}
	if err := json.Unmarshal(resp.Body(), &metadata); err != nil {
		return &ValidationError{Message: "metadata is not valid JSON"}
	}
	if metadata.Image == "" {
		return &ValidationError{Message: "metadata has no image field"}
	}

	imgResp, err := o.http.R().Get(metadata.Image)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("certificate image is not reachable: %v", err)}
	}
	if !imgResp.IsSuccess() {
		return &ValidationError{Message: fmt.Sprintf("image fetch returned status %d", imgResp.StatusCode())}
	}
	if !strings.HasPrefix(imgResp.Header().Get("Content-Type"), "image/") {
		return &ValidationError{Message: "pinned image has a non-image content type"}
	}

	return nil
}

// lookupRecipient matches the recipient to a user account by display
// name within the institution. This is a heuristic join, not a foreign
// key; a missing account substitutes placeholder identity fields and
// never blocks anchoring.
func (o *Orchestrator) lookupRecipient(name string, instituteID uint) MintStudent {
	var user models.User
	err := o.db.Where("name = ? AND institute_id = ? AND is_deleted = false", name, instituteID).
		First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Recipient lookup failed for %q: %v", name, err)
		}
		return MintStudent{
			ID:            "external",
			Email:         "unknown@certchain.io",
			FullName:      name,
			WalletAddress: "0x0000000000000000000000000000000000000000",
		}
	}

	wallet := user.WalletAddress
	if wallet == "" {
		wallet = "0x0000000000000000000000000000000000000000"
	}
	return MintStudent{
		ID:            fmt.Sprintf("%d", user.ID),
		Email:         user.Email,
		FullName:      user.Name,
		WalletAddress: wallet,
	}
}

func (o *Orchestrator) getCertificate(id string) (*models.Certificate, error) {
	var cert models.Certificate
	err := o.db.Where("id = ? AND is_deleted = false", id).First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "certificate", ID: id}
		}
		return nil, &PersistenceError{Op: "fetch certificate", Err: err}
	}
	return &cert, nil
}

func (o *Orchestrator) getInstitution(id uint) (*models.Institution, error) {
	var institution models.Institution
	err := o.db.Where("id = ? AND is_deleted = false", id).First(&institution).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "institution", ID: fmt.Sprintf("%d", id)}
		}
		return nil, &PersistenceError{Op: "fetch institution", Err: err}
	}
	return &institution, nil
}

// verifyURL builds the public verification link for a certificate. An
// unset frontend base degrades to a relative path.
func (o *Orchestrator) verifyURL(certID string) string {
	if o.opts.FrontendURL == "" {
		return "/verify/" + certID
	}
	return strings.TrimRight(o.opts.FrontendURL, "/") + "/verify/" + certID
}

func (o *Orchestrator) explorerTxURL(txHash string) string {
	if o.opts.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(o.opts.ExplorerURL, "/") + "/tx/" + txHash
}
