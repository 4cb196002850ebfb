package caldav

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Object is one calendar resource returned by a REPORT: its server
// path, current ETag, and raw iCalendar text. Parsing the text into
// semantic components is the ical package's job, not this one's.
type Object struct {
	Path string
	ETag string
	Data []byte
}

// calendarDataProp requests the calendar-data property body alongside
// the ETag every REPORT below needs for concurrency control.
type calendarDataProp struct {
	XMLName  xml.Name  `xml:"DAV: prop"`
	GetETag  *struct{} `xml:"DAV: getetag"`
	CalData  *struct{} `xml:"urn:ietf:params:xml:ns:caldav calendar-data"`
}

// calendarQueryReq is the REPORT body for RFC 4791 §7.8 calendar-query:
// a filter restricted to one component type, optionally time-ranged.
type calendarQueryReq struct {
	XMLName xml.Name          `xml:"urn:ietf:params:xml:ns:caldav calendar-query"`
	Prop    calendarDataProp  `xml:"DAV: prop"`
	Filter  queryFilter       `xml:"urn:ietf:params:xml:ns:caldav filter"`
}

type queryFilter struct {
	XMLName xml.Name        `xml:"urn:ietf:params:xml:ns:caldav filter"`
	Comp    queryCompFilter `xml:"comp-filter"`
}

type queryCompFilter struct {
	XMLName   xml.Name         `xml:"urn:ietf:params:xml:ns:caldav comp-filter"`
	Name      string           `xml:"name,attr"`
	Nested    *nestedCompFilter `xml:"comp-filter,omitempty"`
}

type nestedCompFilter struct {
	XMLName   xml.Name       `xml:"urn:ietf:params:xml:ns:caldav comp-filter"`
	Name      string         `xml:"name,attr"`
	TimeRange *queryTimeRange `xml:"time-range,omitempty"`
}

type queryTimeRange struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:caldav time-range"`
	Start   string   `xml:"start,attr,omitempty"`
	End     string   `xml:"end,attr,omitempty"`
}

const caldavTimeLayout = "20060102T150405Z"

// TimeRange narrows a Query to objects overlapping [Start, End). A zero
// value means no restriction.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Query runs a calendar-query REPORT against calendarPath for
// components of the given type ("VEVENT" or "VTODO"), optionally
// restricted to a time range.
func (c *Client) Query(ctx context.Context, calendarPath, compType string, tr TimeRange) ([]Object, error) {
	nested := &nestedCompFilter{Name: compType}
	if !tr.Start.IsZero() || !tr.End.IsZero() {
		nested.TimeRange = &queryTimeRange{
			Start: tr.Start.UTC().Format(caldavTimeLayout),
			End:   tr.End.UTC().Format(caldavTimeLayout),
		}
	}
	reqBody := calendarQueryReq{
		Prop:   calendarDataProp{GetETag: &struct{}{}, CalData: &struct{}{}},
		Filter: queryFilter{Comp: queryCompFilter{Name: "VCALENDAR", Nested: nested}},
	}
	return c.report(ctx, calendarPath, reqBody)
}

// calendarMultigetReq is the REPORT body for RFC 4791 §7.9
// calendar-multiget: fetch a known set of hrefs in one round trip.
type calendarMultigetReq struct {
	XMLName xml.Name         `xml:"urn:ietf:params:xml:ns:caldav calendar-multiget"`
	Prop    calendarDataProp `xml:"DAV: prop"`
	Hrefs   []href           `xml:"DAV: href"`
}

// Multiget fetches the calendar objects at the given server paths in a
// single REPORT, used by sync to resolve added/modified hrefs returned
// by a sync-collection or calendar-query pass.
func (c *Client) Multiget(ctx context.Context, calendarPath string, paths []string) ([]Object, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	hrefs := make([]href, len(paths))
	for i, p := range paths {
		hrefs[i] = href{Path: p}
	}
	reqBody := calendarMultigetReq{
		Prop:  calendarDataProp{GetETag: &struct{}{}, CalData: &struct{}{}},
		Hrefs: hrefs,
	}
	return c.report(ctx, calendarPath, reqBody)
}

func (c *Client) report(ctx context.Context, url string, reqBody any) ([]Object, error) {
	body, err := xml.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("caldav: encode report: %w", err)
	}
	body = append([]byte(xml.Header), body...)

	resp, err := c.doRequest(ctx, "REPORT", c.resolve(url), body, requestOpts{depth: "1"})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("caldav: read report response: %w", err)
	}
	if resp.StatusCode != http.StatusMultiStatus {
		return nil, httpErrorFor(resp.StatusCode, data)
	}

	var ms multistatus
	if err := xml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("caldav: decode report response: %w", err)
	}

	var out []Object
	for _, resp := range ms.Responses {
		p, ok := resp.okProp()
		if !ok || p.CalendarData == "" {
			continue
		}
		out = append(out, Object{
			Path: resp.Href,
			ETag: unquoteETag(p.GetETag),
			Data: []byte(p.CalendarData),
		})
	}
	return out, nil
}

// FreeBusyQuery runs a free-busy-query REPORT (RFC 4791 §7.10) against
// calendarPath for the given range, returning the raw VFREEBUSY text
// the server computed.
func (c *Client) FreeBusyQuery(ctx context.Context, calendarPath string, tr TimeRange) ([]byte, error) {
	reqBody := fmt.Sprintf(`<C:free-busy-query xmlns:C="urn:ietf:params:xml:ns:caldav">`+
		`<C:time-range start="%s" end="%s"/></C:free-busy-query>`,
		tr.Start.UTC().Format(caldavTimeLayout), tr.End.UTC().Format(caldavTimeLayout))

	resp, err := c.doRequest(ctx, "REPORT", c.resolve(calendarPath), []byte(xml.Header+reqBody), requestOpts{depth: "1"})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("caldav: read free-busy response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return nil, httpErrorFor(resp.StatusCode, data)
	}
	return data, nil
}
