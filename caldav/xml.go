package caldav

import "encoding/xml"

const davNS = "DAV:"
const calNS = "urn:ietf:params:xml:ns:caldav"

// href is a WebDAV DAV:href element.
type href struct {
	XMLName xml.Name `xml:"DAV: href"`
	Path    string   `xml:",chardata"`
}

// status carries a "HTTP/1.1 <code> <text>" status line as found in
// DAV:propstat and DAV:response elements.
type status struct {
	XMLName xml.Name `xml:"DAV: status"`
	Text    string   `xml:",chardata"`
}

// prop is the generic DAV:prop container; Raw preserves whatever child
// elements the server sent so callers can decode only what they need.
type prop struct {
	XMLName      xml.Name `xml:"DAV: prop"`
	DisplayName  string   `xml:"DAV: displayname"`
	ResourceType *resourceType
	GetETag      string `xml:"DAV: getetag"`
	CalendarData string `xml:"urn:ietf:params:xml:ns:caldav calendar-data"`
	CTag         string `xml:"http://calendarserver.org/ns/ getctag"`
	CalendarHomeSet *href `xml:"urn:ietf:params:xml:ns:caldav calendar-home-set>href"`
	CurrentUserPrincipal *href `xml:"DAV: current-user-principal>href"`
}

type resourceType struct {
	XMLName    xml.Name `xml:"DAV: resourcetype"`
	Collection *struct{} `xml:"DAV: collection"`
	Calendar   *struct{} `xml:"urn:ietf:params:xml:ns:caldav calendar"`
}

// propstat is a DAV:propstat element: a prop block plus the status it
// was returned under (servers split props across multiple propstats
// when some succeed and some 404).
type propstat struct {
	XMLName xml.Name `xml:"DAV: propstat"`
	Prop    prop     `xml:"prop"`
	Status  status   `xml:"status"`
}

// response is one DAV:response element inside a multistatus body.
type response struct {
	XMLName   xml.Name   `xml:"DAV: response"`
	Href      string     `xml:"href"`
	Propstats []propstat `xml:"propstat"`
	Status    *status    `xml:"status"`
}

// multistatus is the root of a 207 Multi-Status response body, returned
// by both PROPFIND and REPORT.
type multistatus struct {
	XMLName   xml.Name   `xml:"DAV: multistatus"`
	Responses []response `xml:"response"`
}

// okProp returns the prop block of resp whose propstat succeeded (200
// OK), or false if none did.
func (resp response) okProp() (prop, bool) {
	for _, ps := range resp.Propstats {
		if isStatusOK(ps.Status.Text) {
			return ps.Prop, true
		}
	}
	return prop{}, false
}

// propfindReq is the DAV:propfind request body; Prop lists the
// property names to request (as opaque XML elements, so unknown
// properties can still be requested by name).
type propfindReq struct {
	XMLName xml.Name         `xml:"DAV: propfind"`
	Prop    propfindReqNames `xml:"prop"`
}

// propfindReqNames lists bare (no-value) elements under DAV:prop, one
// per requested property name.
type propfindReqNames struct {
	XMLName              xml.Name   `xml:"DAV: prop"`
	ResourceType         *struct{}  `xml:"DAV: resourcetype,omitempty"`
	DisplayName          *struct{}  `xml:"DAV: displayname,omitempty"`
	GetETag              *struct{}  `xml:"DAV: getetag,omitempty"`
	CTag                 *struct{}  `xml:"http://calendarserver.org/ns/ getctag,omitempty"`
	CalendarData         *struct{}  `xml:"urn:ietf:params:xml:ns:caldav calendar-data,omitempty"`
	CalendarHomeSet      *struct{}  `xml:"urn:ietf:params:xml:ns:caldav calendar-home-set,omitempty"`
	CurrentUserPrincipal *struct{}  `xml:"DAV: current-user-principal,omitempty"`
}
