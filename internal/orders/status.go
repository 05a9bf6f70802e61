package orders

type Status string

// Only the initial status is assigned here; fulfilment happens over WhatsApp.
const StatusPending Status = "pending"
