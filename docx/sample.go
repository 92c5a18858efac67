package docx

import (
	"os"
	"path/filepath"
	"time"

	"github.com/siddhant230/draftclaim"
)

// SamplePaths lists the files written by WriteSampleSet.
type SamplePaths struct {
	Disclosure     string
	AdditionalInfo string
	Claims         string
}

// sampleInvention titles the demo corpus.
const sampleInvention = "Smart Water Bottle with IoT Temperature & Hydration Monitoring"

// WriteSampleSet writes a three-document demo corpus into dir. The
// claims document carries three reviewer comments anchored to the
// claims they question.
func WriteSampleSet(dir string) (SamplePaths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return SamplePaths{}, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot create sample directory %s", dir)
	}

	paths := SamplePaths{
		Disclosure:     filepath.Join(dir, "sample_disclosure.docx"),
		AdditionalInfo: filepath.Join(dir, "sample_additional.docx"),
		Claims:         filepath.Join(dir, "sample_claims.docx"),
	}
	for _, doc := range []struct {
		path  string
		build func() *docBuilder
	}{
		{paths.Disclosure, sampleDisclosure},
		{paths.AdditionalInfo, sampleAdditional},
		{paths.Claims, sampleClaims},
	} {
		data, err := doc.build().bytes()
		if err != nil {
			return SamplePaths{}, err
		}
		if err := os.WriteFile(doc.path, data, 0644); err != nil {
			return SamplePaths{}, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot write sample document %s", doc.path)
		}
	}
	return paths, nil
}

func sampleDisclosure() *docBuilder {
	b := newDocBuilder()
	title := func(text string) { b.paragraph(paragraphOptions{style: styleTitle}, run{text: text}) }
	h := func(text string) { b.paragraph(paragraphOptions{style: styleHeading1}, run{text: text}) }
	p := func(text string) { b.paragraph(paragraphOptions{}, run{text: text}) }
	bullet := func(text string) {
		b.paragraph(paragraphOptions{style: styleListBullet, numID: numIDBullet}, run{text: text})
	}

	title("Invention Disclosure")
	p("Title:     " + sampleInvention)
	p("Date:      2024-01-10   |   Inventors: Alice Chen, Bob Kumar")

	h("1. Field of the Invention")
	p("This invention relates to consumer hydration products — specifically a portable " +
		"water bottle with an embedded IoT sensor module capable of monitoring liquid " +
		"temperature and daily hydration intake simultaneously and in real time.")

	h("2. Background")
	p("Dehydration causes measurable cognitive and physical performance decline. " +
		"Existing smart bottles measure either weight (volume) or temperature, not both. " +
		"None provide continuous wireless synchronisation with mobile health applications " +
		"alongside active hydration-deficit alerts.")

	h("3. Summary of the Invention")
	p("Key components of the invention:")
	for _, item := range []string{
		"Double-walled stainless-steel bottle body (400 ml – 1 L variants).",
		"NTC thermistor sensor accurate to ±0.5 °C, seated in the base cap.",
		"Strain-gauge load cell measuring liquid mass to ±2 ml accuracy.",
		"Bluetooth Low Energy (BLE) 5.0 microcontroller — Nordic nRF52840.",
		"Companion mobile application (iOS / Android) with real-time dashboard.",
		"Rechargeable 80 mAh Li-Po battery providing ≥ 14 days per charge.",
		"Wireless OTA firmware update capability via the mobile app.",
	} {
		bullet(item)
	}

	h("4. Detailed Description")
	p("The sensor module occupies a waterproof compartment inside the bottle base " +
		"(IP67-rated, TPU-gasket sealed). The NTC thermistor connects to a 12-bit ADC " +
		"on the microcontroller; temperature is sampled every 10 s and pushed over BLE " +
		"GATT notify packets. The load cell is sampled at 100 ms with a 5-sample moving " +
		"average to suppress vibration artefacts. " +
		"The mobile app aggregates readings, computes daily hydration deficit against a " +
		"body-weight-derived target (35 ml/kg), and issues push-notification reminders. " +
		"All data is persisted on-device; optional cloud sync uses a REST API over TLS 1.3.")

	h("5. Claims Sought")
	for _, item := range []string{
		"Broad apparatus claim: portable container with combined temp + volume sensing.",
		"Method claim: computing hydration deficit from body-weight-based daily target.",
		"System claim: bottle + mobile app + cloud service as an integrated product.",
	} {
		bullet(item)
	}

	h("6. Prior Art Known to Inventors")
	for _, item := range []string{
		"US 10,123,456 — smart bottle with weight sensor only, no temperature.",
		"US 2019/0256123 A1 — temperature-monitoring mug, no volume sensing.",
		"Hidrate Spark 3 (commercial) — BLE hydration tracker, no temperature reading.",
	} {
		bullet(item)
	}
	return b
}

func sampleAdditional() *docBuilder {
	b := newDocBuilder()
	b.paragraph(paragraphOptions{style: styleTitle}, run{text: "Additional Information — Smart Bottle"})
	b.paragraph(paragraphOptions{}, run{text: "Date: 2024-01-12   |   Supplement to main Invention Disclosure"})

	b.paragraph(paragraphOptions{style: styleHeading1},
		run{text: "A. Prototype Bench-Test Results (Prototype v0.3, December 2023)"})
	b.table([][]string{
		{"Metric", "Achieved", "Target"},
		{"Temperature accuracy", "±0.4 °C", "±0.5 °C"},
		{"Volume accuracy", "±1.8 ml", "±2 ml"},
		{"BLE range (open air)", "42 m", "≥ 30 m"},
		{"Battery life", "16 days", "≥ 14 days"},
		{"Water-resistance", "IP67 pass", "IP67"},
	})

	b.paragraph(paragraphOptions{style: styleHeading1}, run{text: "B. Manufacturing Notes"})
	b.paragraph(paragraphOptions{}, run{text: "The TPU gasket is injection-moulded to a ±0.05 mm tolerance to achieve IP67. " +
		"Each load cell is epoxy-bonded and individually calibrated on the production line " +
		"using a two-point calibration (0 g and 500 g reference weights). " +
		"The Nordic nRF52840 module is FCC/IC pre-certified, reducing regulatory lead time."})

	b.paragraph(paragraphOptions{style: styleHeading1}, run{text: "C. Regulatory Considerations"})
	for _, item := range []string{
		"FCC Part 15 (BLE radio) — pre-certified module; declaration of conformity required.",
		"FDA food-contact materials compliance for inner stainless-steel surface coating.",
		"CE marking for EU distribution — EN 300 328 (BLE) + EN 62368-1 (safety); pending.",
		"RoHS / WEEE compliance confirmed for all PCB components.",
	} {
		b.paragraph(paragraphOptions{style: styleListBullet, numID: numIDBullet}, run{text: item})
	}

	b.paragraph(paragraphOptions{style: styleHeading1}, run{text: "D. Licensing Intent"})
	b.paragraph(paragraphOptions{}, run{text: "The inventors intend to license core sensing + firmware IP to established drinkware " +
		"brands. The UI/UX design of the mobile app may be separately licensed or kept " +
		"proprietary. Defensive publication is acceptable for peripheral features " +
		"(e.g., RGB LED hydration indicator)."})
	return b
}

func sampleClaims() *docBuilder {
	b := newDocBuilder()
	h2 := func(text string) { b.paragraph(paragraphOptions{style: styleHeading2}, run{text: text}) }
	p := func(text string) { b.paragraph(paragraphOptions{}, run{text: text}) }

	commentDate := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	questions := []string{
		"Does Claim 1 sufficiently define the positional relationship of the temperature " +
			"sensing element to the liquid? Should the claim specify that the sensor is in " +
			"direct thermal contact with the contents to support enablement under 35 U.S.C. § 112?",
		"Is the term 'wireless communication module' in Claim 3 broad enough to cover Wi-Fi " +
			"and Zigbee implementations described in the disclosure, or should the claim " +
			"language be updated to recite 'short-range wireless protocol' rather than BLE specifically?",
		"Claim 5 recites a 'hydration deficit calculation method' — does the disclosure " +
			"provide sufficient algorithmic detail (e.g., the 35 ml/kg formula and threshold " +
			"logic) to support this claim for written description and enablement purposes?",
	}
	commentIDs := make([]int, len(questions))
	for i, q := range questions {
		commentIDs[i] = b.addComment("Patent Counsel", "PC", commentDate.Add(time.Duration(i)*5*time.Minute), q)
	}

	b.paragraph(paragraphOptions{style: styleTitle}, run{text: "Patent Claims — Smart Hydration Monitoring Bottle"})
	p("Application No.: [PENDING]   |   Filing Date: 2024-01-25")

	b.paragraph(paragraphOptions{style: styleHeading1}, run{text: "Independent Claims"})

	b.annotatedParagraph(paragraphOptions{style: styleHeading2}, "Claim 1 — Apparatus", commentIDs[0])
	p("A portable hydration vessel comprising:")
	p("a vessel body defining an interior volume configured to hold a liquid;")
	p("a temperature sensing element configured to measure a temperature of the liquid;")
	p("a volume sensing element configured to measure a quantity of liquid in the vessel body;")
	p("a processor operatively coupled to both sensing elements; and")
	p("a non-transitory memory storing instructions that, when executed by the processor, " +
		"cause the processor to generate hydration data based on the measured temperature " +
		"and the measured quantity of liquid.")

	b.annotatedParagraph(paragraphOptions{style: styleHeading2}, "Claim 3 — Apparatus with Wireless Communication", commentIDs[1])
	p("The portable hydration vessel of Claim 1, further comprising:")
	p("a wireless communication module configured to transmit the hydration data to an external computing device;")
	p("wherein the wireless communication module operates according to a short-range wireless protocol.")

	b.annotatedParagraph(paragraphOptions{style: styleHeading2}, "Claim 5 — Method", commentIDs[2])
	p("A computer-implemented method for hydration monitoring, comprising:")
	p("receiving, from a sensor module of a portable vessel, temperature data and volume data;")
	p("computing a hydration deficit based on the volume data and a user-defined daily hydration target; and")
	p("generating a notification when the hydration deficit exceeds a predetermined threshold.")

	b.paragraph(paragraphOptions{style: styleHeading1}, run{text: "Dependent Claims"})

	h2("Claim 2")
	p("The portable hydration vessel of Claim 1, wherein the temperature sensing element " +
		"comprises a negative temperature coefficient (NTC) thermistor.")

	h2("Claim 4")
	p("The portable hydration vessel of Claim 1, wherein the volume sensing element " +
		"comprises a strain-gauge load cell configured to measure a weight of the liquid.")

	h2("Claim 6")
	p("The method of Claim 5, wherein the daily hydration target is computed as " +
		"35 millilitres per kilogram of a user's body weight.")
	return b
}
