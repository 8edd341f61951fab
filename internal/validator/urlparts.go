package validator

import "net/url"

func hostOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}

func hostPathScheme(raw string) (host, path, scheme string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", err
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	return u.Hostname(), p, u.Scheme, nil
}
