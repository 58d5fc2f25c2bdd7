// Package manifest parses BICC extract manifest files (MANIFEST.MF).
//
// # Manifest Format
//
// The first line is a header and never names a document. Every following
// line names one extract file and its content server document ID; further
// fields such as the checksum are ignored:
//
//	PLV_KEY=FUSION_13_0
//	file_crmanalyticsam_partiesanalyticsam_customer-batch1.zip;100001;6b1c...
//	file_fscmtopmodelam_finextractam_glbiccextractam-batch2.zip;100002;a93e...
//
// # Usage
//
//	lines, err := manifest.NewLoader().Load("MANIFEST.MF")
//	if err != nil {
//	    return err
//	}
//	batch, err := manifest.BuildBatch(lines, "999999")
//
// Parse keeps blank lines so the reported line count matches the file;
// BuildBatch skips them when building delete entries.
package manifest
