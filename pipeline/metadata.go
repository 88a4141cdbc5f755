package pipeline

import (
	"certchain/models"
	"time"
)

// apiVersion is stamped into every metadata document so third-party
// viewers can tell which schema revision produced it.
const apiVersion = "1.0"

// MetadataAttribute is one trait entry in the NFT metadata. The
// trait_type/value shape is what NFT-metadata-aware viewers expect and
// must remain stable.
type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// CertificateMetadata is the JSON document pinned to IPFS alongside the
// certificate image. Consumed by third-party NFT viewers; field names
// are part of the public contract.
type CertificateMetadata struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	CourseName      string              `json:"course_name"`
	RecipientName   string              `json:"recipient_name"`
	InstitutionName string              `json:"institution_name"`
	IssuedAt        string              `json:"issued_at"`
	CertificateType string              `json:"certificate_type"`
	Blockchain      string              `json:"blockchain"`
	ApiVersion      string              `json:"api_version"`
	CreatedAt       string              `json:"created_at"`
	Image           string              `json:"image"`
	ExternalURL     string              `json:"external_url,omitempty"`
	Attributes      []MetadataAttribute `json:"attributes"`
}

// buildMetadata assembles the pinned metadata document for a
// certificate. imageURL must be the already-resolved gateway URL of the
// pinned certificate image.
func buildMetadata(cert *models.Certificate, institutionName, imageURL, verifyURL string) *CertificateMetadata {
	return &CertificateMetadata{
		ID:              cert.ID,
		Name:            cert.CourseName + " - " + cert.RecipientName,
		Description:     "Certificate of completion for " + cert.CourseName + " issued to " + cert.RecipientName + " by " + institutionName,
		CourseName:      cert.CourseName,
		RecipientName:   cert.RecipientName,
		InstitutionName: institutionName,
		IssuedAt:        cert.IssuedAt.UTC().Format(time.RFC3339),
		CertificateType: "Digital Certificate",
		Blockchain:      "Avalanche",
		ApiVersion:      apiVersion,
		CreatedAt:       cert.CreatedAt.UTC().Format(time.RFC3339),
		Image:           imageURL,
		ExternalURL:     verifyURL,
		Attributes: []MetadataAttribute{
			{TraitType: "Recipient", Value: cert.RecipientName},
			{TraitType: "Course", Value: cert.CourseName},
			{TraitType: "Institution", Value: institutionName},
			{TraitType: "Issued At", Value: cert.IssuedAt.UTC().Format(time.RFC3339)},
		},
	}
}

// MintStudent identifies the certificate recipient in a mint request.
// Filled from a best-effort user lookup; placeholder values when the
// recipient has no account.
type MintStudent struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	WalletAddress string `json:"wallet_address"`
}

type MintCertificate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CourseName  string `json:"course_name"`
	IssuedAt    string `json:"issued_at"`
	Grade       string `json:"grade"`
	Credits     int    `json:"credits"`
}

type MintInstitution struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	LegalID string `json:"legal_id"`
	Address string `json:"address"`
	Website string `json:"website"`
}

type MintIPFS struct {
	ImageHash    string `json:"image_hash"`
	MetadataHash string `json:"metadata_hash"`
	ImageURL     string `json:"image_url"`
	MetadataURL  string `json:"metadata_url"`
	TokenURI     string `json:"token_uri"`
	FrontEndURL  string `json:"front_end_url"`
}

// MintRequest is the anchoring payload submitted to the minting service.
type MintRequest struct {
	Student     MintStudent     `json:"student"`
	Certificate MintCertificate `json:"certificate"`
	Institution MintInstitution `json:"institution"`
	IPFS        MintIPFS        `json:"ipfs"`
}
