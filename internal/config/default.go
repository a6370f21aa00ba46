package config

// defaultYAML is the built-in model table, used when no -config file is
// given and discovery finds nothing. It mirrors the long-lived TS batches.
const defaultYAML = `
platforms:
  wgs_csbd:
    - ts_number: "01"
      edit_id: RULEEM000001
      code: W04
      source_dir: source_folder/WGS_CSBD/TS_01_Covid_WGS_CSBD_RULEEM000001_W04_sur/regression
      dest_dir: renaming_jsons/WGS_CSBD/TS_01_Covid_WGS_CSBD_RULEEM000001_W04_dis/regression
      collection_name: TS_01_Covid_Collection
      file_name: covid_wgs_csbd_RULEEM000001_w04.json
    - ts_number: "02"
      edit_id: RULELATE000001
      code: 00W17
      source_dir: source_folder/WGS_CSBD/TS_02_Laterality_WGS_CSBD_RULELATE000001_00W17_sur/regression
      dest_dir: renaming_jsons/WGS_CSBD/TS_02_Laterality_WGS_CSBD_RULELATE000001_00W17_dis/regression
      collection_name: TS_02_Laterality_Collection
      file_name: laterality_wgs_csbd_RULELATE000001_00w17.json
    - ts_number: "07"
      edit_id: rvn011
      code: 00W11
      source_dir: source_folder/WGS_CSBD/TS_07_REVENUE_WGS_CSBD_rvn011_00W11_sur/regression
      dest_dir: renaming_jsons/WGS_CSBD/TS_07_REVENUE_WGS_CSBD_rvn011_00W11_dis/regression
      collection_name: TS_07_Revenue_Collection
      file_name: revenue_wgs_csbd_rvn011_00w11.json
  gbdf:
    - ts_number: "47"
      edit_id: RULEEM000001
      code: v04
      source_dir: source_folder/GBDF/TS_47_Covid_gbdf_mcr_RULEEM000001_v04_sur/regression
      dest_dir: renaming_jsons/GBDF/TS_47_Covid_gbdf_mcr_RULEEM000001_v04_dis/regression
      collection_name: TS_47_Covid_gbdf_mcr_Collection
      file_name: covid_gbdf_mcr_RULEEM000001_v04.json
`

// Default returns the built-in model table.
func Default() *File {
	f, err := Parse([]byte(defaultYAML))
	if err != nil {
		// The built-in table is part of the binary; failing to parse it is
		// a programming error.
		panic(err)
	}
	return f
}
