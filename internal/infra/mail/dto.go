package mail

type NewLeadEmailData struct {
	BuyerName  string
	SiteDomain string
	Price      string
	FreeLead   bool
	Fields     map[string]string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
