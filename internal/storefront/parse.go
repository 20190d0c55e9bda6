package storefront

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoPrice indicates a listing page carried no parseable offer.
var ErrNoPrice = errors.New("no price found")

func parseSearchResults(body []byte) ([]Result, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var results []Result
	walk(root, func(n *html.Node) {
		if !isElement(n, "div") || !hasClass(n, "game-item") {
			return
		}
		link := findFirst(n, func(child *html.Node) bool {
			return isElement(child, "a") && hasClass(child, "name")
		})
		if link == nil {
			link = findFirst(n, func(child *html.Node) bool {
				return isElement(child, "a") && attr(child, "href") != ""
			})
		}
		if link == nil {
			return
		}
		title := strings.TrimSpace(textContent(link))
		href := attr(link, "href")
		if title == "" || href == "" {
			return
		}
		results = append(results, Result{Title: title, URL: href})
	})
	return results, nil
}

func parsePricePage(body []byte) (Price, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Price{}, err
	}

	priceNode := findFirst(root, func(n *html.Node) bool {
		return hasClass(n, "lowPrice") || hasClass(n, "low-price")
	})
	if priceNode == nil {
		return Price{}, ErrNoPrice
	}

	amount, currency, err := ParseMoney(textContent(priceNode))
	if err != nil {
		return Price{}, err
	}

	price := Price{Amount: amount, Currency: currency}
	if shopNode := findFirst(root, func(n *html.Node) bool {
		return hasClass(n, "shop-style") || hasClass(n, "shop-name")
	}); shopNode != nil {
		price.Shop = canonicalShopName(textContent(shopNode))
	}
	return price, nil
}

var shopCaser = cases.Title(language.English)

// canonicalShopName tames storefront shop labels, which often arrive in
// all caps. Mixed-case names pass through untouched.
func canonicalShopName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == strings.ToUpper(name) && name != strings.ToLower(name) {
		return shopCaser.String(strings.ToLower(name))
	}
	return name
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(child *html.Node) {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	})
	return sb.String()
}
