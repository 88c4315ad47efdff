package model

type Holder struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	ExternalTicketID string `json:"external_ticket_id,omitempty"`
}

type IngestSingleRequest struct {
	EventName string `json:"event_name"`
	Holder    Holder `json:"holder"`

	Resume *ResumePoint `json:"resume,omitempty"`
}

type IngestGuestListRequest struct {
	EventID string `json:"event_id"`

	// GuestListCSV is the raw upload: a header row followed by
	// "ticketId,name,email" rows.
	GuestListCSV string `json:"guest_list_csv"`

	Resume *ResumePoint `json:"resume,omitempty"`
}

// ResumePoint lets a caller retry a batch whose content pin already
// succeeded without re-pinning or allocating a new batch id. When AnchorTrx
// is set the anchor step is skipped too and only notification and
// persistence are retried.
type ResumePoint struct {
	BatchID        int64  `json:"batch_id"`
	ContentAddress string `json:"content_address"`
	AnchorTrx      string `json:"anchor_trx,omitempty"`
}

// RecipientResult is the per-holder outcome of one batch run. A recipient
// whose mail failed is not persisted in that run and is safe to re-ingest.
type RecipientResult struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	MailSent  bool   `json:"mail_sent"`
	MessageID string `json:"message_id,omitempty"`
	Persisted bool   `json:"persisted"`
	Error     string `json:"error,omitempty"`
}

type BatchResponse struct {
	State   string `json:"state"`
	BatchID int64  `json:"batch_id,omitempty"`

	MerkleRoot     string `json:"merkle_root,omitempty"`
	ContentAddress string `json:"content_address,omitempty"`
	AnchorTrx      string `json:"anchor_trx,omitempty"`

	FailureReason string `json:"failure_reason,omitempty"`

	Recipients []RecipientResult `json:"recipients"`
}
