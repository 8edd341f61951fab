package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// ValidatorConfig is the fully-resolved, typed form of config_urls.json.
// It is built once, at startup, and its regexes are compiled exactly
// once here rather than per scoring call.
type ValidatorConfig struct {
	// Weights and penalties (see defaultValidatorConfig for the default table)
	LinkWeights   map[string]int
	LinkPenalties map[string]int
	PageWeights   map[string]int
	PagePenalties map[string]int

	LinkThreshold int
	PageThreshold int

	AllowedPathPrefixes  []string
	AllowedRootPaths     []string
	ForbiddenSegments    []string
	ForbiddenProtocols   []string
	ForbiddenExtensions  []string
	AllowedDomains       map[string][]string
	DocsKeywords         []string
	SeedCommercialPhrases []string
	PageCommercialPhrases []string

	RequestedVersion string

	FuzzyPrefixThreshold int

	versionPattern *regexp.Regexp
}

// scoringDTO mirrors config_urls.json's nested "pontuacao" object: link
// and page thresholds plus the per-dimension weight/penalty overrides.
// Its "pesos"/"penalidades" keys are the original's Portuguese dimension
// names (protocolo, dominio, prefixo, extensao, segmentos, versao), not
// this package's internal English ones — see pesosKeyMap/penalidadesKeyMap.
type scoringDTO struct {
	ThresholdLink   int            `json:"threshold_link"`
	ThresholdPagina int            `json:"threshold_pagina"`
	Pesos           map[string]int `json:"pesos"`
	Penalidades     map[string]int `json:"penalidades"`
}

// validatorConfigDTO mirrors config_urls.json's on-disk shape exactly:
// the recognised keys are the ones spec.md §6 documents, unchanged from
// the original config file's schema. Any other key is silently ignored
// by encoding/json, matching the original's dict.get-with-default reads.
type validatorConfigDTO struct {
	ExtensoesInvalidas          []string            `json:"extensoes_invalidas"`
	SegmentosDeCaminhoInvalidos []string            `json:"segmentos_de_caminho_invalidos"`
	ProtocolosInvalidos         []string            `json:"protocolos_invalidos"`
	PrefixosPermitidos          []string            `json:"prefixos_permitidos"`
	CaminhosRaizPermitidos      []string            `json:"caminhos_raiz_permitidos"`
	SegmentosDeUrlValida        []string            `json:"segmentos_de_url_valida"`
	DominiosPermitidos          map[string][]string `json:"dominios_permitidos"`
	Pontuacao                   scoringDTO          `json:"pontuacao"`
}

// pesosKeyMap/penalidadesKeyMap translate config_urls.json's Portuguese
// scoring-dimension keys to this package's internal English ones.
var pesosKeyMap = map[string]string{
	"protocolo": "protocol",
	"dominio":   "host",
	"prefixo":   "path_prefix",
	"extensao":  "extension",
	"segmentos": "segments",
	"versao":    "version",
}

var penalidadesKeyMap = map[string]string{
	"protocolo": "protocol",
	"dominio":   "host",
	"extensao":  "extension",
	"segmentos": "segments",
}

// versionCapturePattern extracts a version fragment ("3" or "3.11")
// from anywhere in a candidate URL, optionally preceded by "v" or
// "version/". Deliberately unanchored: an earlier revision anchored
// this pattern to the start of the string, which silently missed every
// version marker not in the first path segment.
var versionCapturePattern = regexp.MustCompile(`(?:v|version/)?(\d+(?:\.\d+)?)/`)

// defaultValidatorConfig reproduces the link- and page-scorer tables
// verbatim: protocol +10/-60, host +15/-40, path-prefix +15/abstain,
// extension +10/-30, forbidden-segments +20/-50, version-match
// +15/abstain for links; threshold 50 for both scorers.
func defaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		LinkWeights: map[string]int{
			"protocol":    10,
			"host":        15,
			"path_prefix": 15,
			"extension":   10,
			"segments":    20,
			"version":     15,
		},
		LinkPenalties: map[string]int{
			"protocol":    -60,
			"host":        -40,
			"path_prefix": 0,
			"extension":   -30,
			"segments":    -50,
			"version":     0,
		},
		PageWeights: map[string]int{
			"structure_with_code": 50,
			"structure_plain":     30,
			"length_high":         30,
			"length_mid":          15,
			"length_low":          5,
			"markdown_formatting": 20,
		},
		PagePenalties: map[string]int{
			"commercial_phrase": -30,
		},
		LinkThreshold:         50,
		PageThreshold:         50,
		AllowedPathPrefixes:   []string{"docs", "guide", "api"},
		AllowedRootPaths:      []string{"/"},
		ForbiddenSegments:     []string{"login", "signup", "cart", "pricing", "checkout"},
		ForbiddenProtocols:    []string{"mailto", "tel", "ftp", "javascript"},
		ForbiddenExtensions:   []string{".zip", ".pdf", ".exe", ".dmg", ".png", ".jpg", ".jpeg", ".svg", ".gif"},
		AllowedDomains:        map[string][]string{},
		DocsKeywords:          []string{"documentation", "docs", "api reference", "developer guide", "manual"},
		SeedCommercialPhrases: []string{"carrinho de compras", "fórum", "blog", "loja", "preços"},
		PageCommercialPhrases: []string{"carrinho de compras", "faça seu login", "fórum de discussão", "compre agora"},
		FuzzyPrefixThreshold:  75,
	}
}

// LoadValidatorConfig reads and validates config_urls.json at path,
// falling back field-by-field to the built-in defaults for anything
// the file omits. A malformed file is a construction-time error.
func LoadValidatorConfig(path string) (ValidatorConfig, error) {
	cfg := defaultValidatorConfig()
	if path == "" {
		cfg.versionPattern = versionCapturePattern
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return ValidatorConfig{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ValidatorConfig{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	var dto validatorConfigDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return ValidatorConfig{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	applyValidatorDTO(&cfg, dto)
	cfg.versionPattern = versionCapturePattern
	return cfg, nil
}

func applyValidatorDTO(cfg *ValidatorConfig, dto validatorConfigDTO) {
	mergeTranslatedIntMap(cfg.LinkWeights, dto.Pontuacao.Pesos, pesosKeyMap)
	mergeTranslatedIntMap(cfg.LinkPenalties, dto.Pontuacao.Penalidades, penalidadesKeyMap)

	if dto.Pontuacao.ThresholdLink != 0 {
		cfg.LinkThreshold = dto.Pontuacao.ThresholdLink
	}
	if dto.Pontuacao.ThresholdPagina != 0 {
		cfg.PageThreshold = dto.Pontuacao.ThresholdPagina
	}
	if len(dto.PrefixosPermitidos) > 0 {
		cfg.AllowedPathPrefixes = dto.PrefixosPermitidos
	}
	if len(dto.CaminhosRaizPermitidos) > 0 {
		cfg.AllowedRootPaths = dto.CaminhosRaizPermitidos
	}
	if len(dto.SegmentosDeCaminhoInvalidos) > 0 {
		cfg.ForbiddenSegments = dto.SegmentosDeCaminhoInvalidos
	}
	if len(dto.ProtocolosInvalidos) > 0 {
		cfg.ForbiddenProtocols = dto.ProtocolosInvalidos
	}
	if len(dto.ExtensoesInvalidas) > 0 {
		cfg.ForbiddenExtensions = dto.ExtensoesInvalidas
	}
	if len(dto.DominiosPermitidos) > 0 {
		cfg.AllowedDomains = dto.DominiosPermitidos
	}
	if len(dto.SegmentosDeUrlValida) > 0 {
		cfg.DocsKeywords = dto.SegmentosDeUrlValida
	}
}

// mergeTranslatedIntMap copies src into dst, translating each key
// through keyMap first. A src key absent from keyMap is ignored: an
// unrecognised scoring dimension has nothing to override.
func mergeTranslatedIntMap(dst, src map[string]int, keyMap map[string]string) {
	for k, v := range src {
		if translated, ok := keyMap[k]; ok {
			dst[translated] = v
		}
	}
}

// VersionPattern returns the compiled version-capture regex, built once
// at LoadValidatorConfig time.
func (c ValidatorConfig) VersionPattern() *regexp.Regexp {
	return c.versionPattern
}

// AllowedDomainSet flattens AllowedDomains' values into a single set,
// matching the original implementation: the map's keys are just
// human-readable groupings (e.g. "primary", "mirrors"), membership is
// checked against the union of every value list.
func (c ValidatorConfig) AllowedDomainSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, domains := range c.AllowedDomains {
		for _, d := range domains {
			set[d] = struct{}{}
		}
	}
	return set
}
