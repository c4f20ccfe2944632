package panel

import (
	"strconv"

	"golang.org/x/net/html"

	"rssw.eu/licensepanel/internal/dom"
	"rssw.eu/licensepanel/internal/identity"
	"rssw.eu/licensepanel/internal/license"
	"rssw.eu/licensepanel/internal/portal"
)

const (
	LicensesHeading    = "CABL rules • Licenses"
	RequestHeading     = "CABL rules • Request new license"
	RequestLinkText    = "Acquire or renew license for this server"
	NotInstalledNotice = "Riverside Rules plugin is not installed..."
	CodeBlockID        = "cabl-input"

	cellStyle      = "padding: 10px;"
	separatorStyle = "height: 8px; margin-top: 10px; margin-bottom: 10px;"
	codeBlockStyle = "width: 600px; overflow: auto; background-color: #bbbbbb; border: 1px solid #898989; padding: 5px; white-space: pre-wrap; "
)

// identitySlots are the nodes the identity stage fills in.
type identitySlots struct {
	linkCell *html.Node
	code     *html.Node
}

// renderLicenses attaches the license table and the request section to root.
func renderLicenses(root *html.Node, list license.List, links portal.Links) identitySlots {
	dom.SetAttr(root, "class", "page page-limited")

	dom.Append(root,
		heading(LicensesHeading),
		licenseTable(list),
		dom.Element("hr", dom.Attr("style", separatorStyle)),
		heading(RequestHeading),
	)

	linkCell := dom.Element("td", dom.Attr("style", cellStyle))

	info := dom.Element("td", dom.Attr("style", cellStyle))
	dom.Append(info,
		dom.Text("Your CABL licenses can be managed at "),
		dom.Append(dom.Element("a", dom.Attr("href", links.Landing())), dom.Text(links.Landing())),
		dom.Text(". "),
	)

	code := dom.Element("code")
	codeCell := dom.Element("td", dom.Attr("style", cellStyle))
	dom.Append(codeCell,
		dom.Append(dom.Element("pre", dom.Attr("id", CodeBlockID), dom.Attr("style", codeBlockStyle)), code),
	)

	body := dom.Append(dom.Element("tbody"),
		dom.Append(dom.Element("tr"), linkCell),
		dom.Append(dom.Element("tr"), info),
		dom.Append(dom.Element("tr"), codeCell),
	)
	dom.Append(root, dom.Append(dom.Element("table"), body))

	return identitySlots{linkCell: linkCell, code: code}
}

func heading(text string) *html.Node {
	return dom.Append(dom.Element("h1"), dom.Text(text))
}

func licenseTable(list license.List) *html.Node {
	tbl := dom.Element("table",
		dom.Attr("class", "data zebra zebra-hover"),
		dom.Attr("style", "table-layout: fixed;"),
	)

	headRow := dom.Element("tr")
	for _, col := range license.Columns {
		th := dom.Element("th")
		if col.Width > 0 {
			dom.SetAttr(th, "width", strconv.Itoa(col.Width))
		}
		dom.Append(headRow, dom.Append(th, dom.Text(col.Title)))
	}
	dom.Append(tbl, dom.Append(dom.Element("thead"), headRow))

	body := dom.Element("tbody")
	for _, rec := range list.Licenses {
		row := dom.Element("tr")
		for _, cell := range rec.Cells() {
			dom.Append(row, dom.Append(dom.Element("td"), dom.Text(cell)))
		}
		dom.Append(body, row)
	}
	return dom.Append(tbl, body)
}

// renderIdentity shows the serialized payload and the license request link.
func renderIdentity(slots identitySlots, payload identity.Payload, links portal.Links) {
	serialized := payload.String()
	dom.SetText(slots.code, serialized)

	link := dom.Element("a",
		dom.Attr("href", links.LicenseRequest(serialized)),
		dom.Attr("rel", "noopener noreferrer"),
		dom.Attr("target", "_blank"),
	)
	dom.Append(slots.linkCell, dom.Append(link, dom.Text(RequestLinkText)))
}

func renderIdentityMissing(slots identitySlots) {
	dom.SetText(slots.code, NotInstalledNotice)
}
