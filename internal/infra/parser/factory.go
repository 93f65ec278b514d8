package parser

import (
	"fmt"

	"jobfeed/internal/usecase/importer"
)

// Built-in partner names and extensions, in detection order.
const (
	PartnerRegionsJob = "regionsjob"
	PartnerJobTeaser  = "jobteaser"

	ExtensionXML  = "xml"
	ExtensionJSON = "json"
)

// NewRegistry creates a registry holding the built-in partners and the
// extension fallbacks. New partners are added by registering them here or
// on the returned registry; the selector needs no change.
func NewRegistry() *importer.Registry {
	reg := importer.NewRegistry()
	xmlParser := NewRegionsJobParser()
	jsonParser := NewJobTeaserParser()

	mustRegister(reg.RegisterPartner(PartnerRegionsJob, xmlParser, RegionsJobSniffer{}))
	mustRegister(reg.RegisterPartner(PartnerJobTeaser, jsonParser, JobTeaserSniffer{}))
	mustRegister(reg.RegisterExtension(ExtensionXML, xmlParser))
	mustRegister(reg.RegisterExtension(ExtensionJSON, jsonParser))
	return reg
}

func mustRegister(err error) {
	if err != nil {
		panic(fmt.Sprintf("parser: built-in registration: %v", err))
	}
}
