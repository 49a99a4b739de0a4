package sqlinline

const QInsertContribution = `--sql e856fb16-720e-4ec3-b451-cda607790f7c
insert into contributions(id, campaign_id, contributor_name, amount, payment_method, country_code, payment_hash, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::bigint, $4::text, $5::text, nullif($6::text, ''), now())
returning id, created_at;
`

const QListContributionsByCampaign = `--sql 90b83d07-d2ff-4b23-b4ee-c65b670416d0
select id, campaign_id, contributor_name, amount, payment_method, coalesce(country_code, ''), coalesce(payment_hash, ''), created_at
from contributions
where campaign_id = $1::uuid
order by created_at desc;
`

// QNotifyContribution fans a freshly inserted contribution out to live feeds.
const QNotifyContribution = `--sql 5a9e1c03-d5df-457d-bb38-5a0b5efe9951
select pg_notify('contribution_inserts', $1::text);
`
