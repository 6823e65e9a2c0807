package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"evalgo.org/hostreg/models"
)

// HostInput is the body of a create or update request.
//
// MAURLs and Addresses are only applied when present in the request, so the
// decoder records their presence. MAURLs travels as newline-joined text but a
// JSON array is accepted as well.
type HostInput struct {
	// LSID is accepted on the wire and always ignored
	LSID string `json:"lsid,omitempty"`

	Hostname    string            `json:"hostname,omitempty" validate:"required"`
	Sitename    string            `json:"sitename,omitempty"`
	Info        map[string]string `json:"info,omitempty"`
	Communities []string          `json:"communities,omitempty"`
	Admins      []string          `json:"admins,omitempty"`

	Services   []models.Service `json:"services,omitempty" validate:"dive"`
	NoAgent    bool             `json:"no_agent,omitempty"`
	LocalMA    bool             `json:"local_ma,omitempty"`
	LocalMAURL string           `json:"local_ma_url,omitempty" validate:"omitempty,url"`
	ToolkitURL string           `json:"toolkit_url,omitempty" validate:"omitempty,url"`
	Desc       string           `json:"desc,omitempty"`

	MAURLs    []string         `json:"-"`
	Addresses []models.Address `json:"-" validate:"dive"`

	hasMAURLs    bool
	hasAddresses bool
}

// UnmarshalJSON decodes the request body and tracks optional fields.
func (in *HostInput) UnmarshalJSON(data []byte) error {
	type plain HostInput
	var body struct {
		plain
		MAURLs    json.RawMessage `json:"ma_urls"`
		Addresses json.RawMessage `json:"addresses"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*in = HostInput(body.plain)

	if len(body.MAURLs) > 0 && string(body.MAURLs) != "null" {
		urls, err := decodeMAURLs(body.MAURLs)
		if err != nil {
			return err
		}
		in.SetMAURLs(urls)
	}
	if len(body.Addresses) > 0 && string(body.Addresses) != "null" {
		var addrs []models.Address
		if err := json.Unmarshal(body.Addresses, &addrs); err != nil {
			return fmt.Errorf("addresses: %w", err)
		}
		in.SetAddresses(addrs)
	}
	return nil
}

func decodeMAURLs(raw json.RawMessage) ([]string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return SplitMAURLs(text), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("ma_urls must be a string or a list of strings")
	}
	return list, nil
}

// SetMAURLs marks ma_urls as present with the given list.
func (in *HostInput) SetMAURLs(urls []string) {
	if urls == nil {
		urls = []string{}
	}
	in.MAURLs = urls
	in.hasMAURLs = true
}

// SetAddresses marks addresses as present with the given list.
func (in *HostInput) SetAddresses(addrs []models.Address) {
	if addrs == nil {
		addrs = []models.Address{}
	}
	in.Addresses = addrs
	in.hasAddresses = true
}

// SplitMAURLs converts the newline-joined wire form into a list. Blank lines
// are dropped; empty text yields an empty list.
func SplitMAURLs(text string) []string {
	urls := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}

// JoinMAURLs converts a stored list into the wire form.
func JoinMAURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

// newHost builds the record for an adhoc registration.
func (in *HostInput) newHost(owner string, now time.Time) *models.Host {
	host := &models.Host{
		Hostname:    in.Hostname,
		Sitename:    in.Sitename,
		Info:        in.Info,
		Communities: in.Communities,
		Admins:      in.Admins,
		Services:    cleanServices(in.Services),
		NoAgent:     in.NoAgent,
		LocalMA:     in.LocalMA,
		LocalMAURL:  in.LocalMAURL,
		MAURLs:      in.MAURLs,
		Addresses:   in.Addresses,
		ToolkitURL:  in.ToolkitURL,
		Desc:        in.Desc,
		CreateDate:  now,
		UpdateDate:  now,
	}
	if host.Admins == nil {
		host.Admins = []string{owner}
	}
	return host
}

// applyTo merges an update request into host following the mutability
// rules: operational fields always change, identity fields only on adhoc
// hosts. Services are replaced wholesale.
func (in *HostInput) applyTo(host *models.Host, now time.Time) {
	host.Services = cleanServices(in.Services)
	host.NoAgent = in.NoAgent
	host.LocalMA = in.LocalMA
	host.LocalMAURL = in.LocalMAURL
	host.ToolkitURL = in.ToolkitURL
	host.Desc = in.Desc
	if in.hasMAURLs {
		host.MAURLs = in.MAURLs
	}
	if in.hasAddresses {
		host.Addresses = in.Addresses
	}
	host.UpdateDate = now

	if host.IsAdhoc() {
		host.Hostname = in.Hostname
		host.Sitename = in.Sitename
		host.Info = in.Info
		host.Communities = in.Communities
		host.Admins = in.Admins
	}
}

// cleanServices copies the request's services so that an entry without an
// ma reference clears any reference stored before.
func cleanServices(in []models.Service) []models.Service {
	if in == nil {
		return nil
	}
	out := make([]models.Service, len(in))
	for i, svc := range in {
		svc.MA = strings.TrimSpace(svc.MA)
		out[i] = svc
	}
	return out
}

// MAURLText is ma_urls in wire form. A non-empty list is sent as
// newline-joined text; a list that was cleared goes out as [].
type MAURLText []string

func (t MAURLText) String() string { return JoinMAURLs(t) }

// MarshalJSON implements json.Marshaler.
func (t MAURLText) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(t.String())
}

// HostView is a host as returned to callers. It adds the per-caller
// _canedit flag and carries ma_urls in wire form; it is never stored.
// Hosts that never had ma_urls omit the field.
type HostView struct {
	*models.Host
	MAURLs  MAURLText `json:"ma_urls,omitzero"`
	CanEdit bool      `json:"_canedit"`
}

// NewHostView renders host for caller.
func NewHostView(caller *models.Identity, host *models.Host) *HostView {
	return &HostView{
		Host:    host,
		MAURLs:  MAURLText(host.MAURLs),
		CanEdit: CanEdit(caller, host),
	}
}

// HostList is a page of hosts plus the total number of matches.
type HostList struct {
	Hosts []*HostView `json:"hosts"`
	Count int64       `json:"count"`
}
