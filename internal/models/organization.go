package models

// Organization statuses.
const (
	OrgStatusActive   = "active"
	OrgStatusInactive = "inactive"
)

// Organization types.
const (
	OrgTypePersonal = "personal"
	OrgTypeAgency   = "agency"
)

// Organization is an event organizer.
type Organization struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Status       string  `json:"status"`
	Type         *string `json:"type"`
	LogoURL      *string `json:"logoUrl"`
	ContactMail  *string `json:"contactMail"`
	Website      *string `json:"website"`
	Twitter      *string `json:"twitter"`
	Weibo        *string `json:"weibo"`
	QQGroup      *string `json:"qqGroup"`
	Bilibili     *string `json:"bilibili"`
	Wikifur      *string `json:"wikifur"`
	CreationTime *string `json:"creationTime"`
}

// EditableOrganization is the wire shape accepted by create and update.
// Unset optional values are omitted rather than sent as empty strings.
type EditableOrganization struct {
	ID           *string `json:"id,omitempty"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Description  *string `json:"description,omitempty"`
	Type         *string `json:"type,omitempty"`
	LogoURL      *string `json:"logoUrl,omitempty"`
	ContactMail  *string `json:"contactMail,omitempty"`
	Website      *string `json:"website,omitempty"`
	Twitter      *string `json:"twitter,omitempty"`
	Weibo        *string `json:"weibo,omitempty"`
	QQGroup      *string `json:"qqGroup,omitempty"`
	Bilibili     *string `json:"bilibili,omitempty"`
	Wikifur      *string `json:"wikifur,omitempty"`
	CreationTime *string `json:"creationTime,omitempty"`
}
